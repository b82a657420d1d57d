package dtos

type ShortenRequest struct {
	URL string `json:"url" validate:"required"`
}

type ShortenResponse struct {
	Code     string `json:"code"`
	ShortURL string `json:"short_url"`
	QRBase64 string `json:"qr_base64"`
}
