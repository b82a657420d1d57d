package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cvadnais/qr-tracker/internal/entities"
	"github.com/cvadnais/qr-tracker/internal/lib/logger/sl"
	"github.com/cvadnais/qr-tracker/internal/repositories"
)

// createAttempts bounds the collision-retry loop around code generation.
const createAttempts = 5

// CreateResult is everything a successful create produces.
type CreateResult struct {
	Code     string
	ShortURL string
	PNG      []byte
}

// LinkStats is the per-code report: destination plus aggregate clicks.
type LinkStats struct {
	Destination string
	Clicks      int64
}

// LinkService orchestrates the create and resolve pipelines over the
// link store, the click ledger, the code generator and the QR encoder.
type LinkService struct {
	log    *slog.Logger
	links  *repositories.LinkRepo
	clicks *repositories.ClickRepo
	codes  *CodeService
	qr     *QRService
	qrSize int
}

func NewLinkService(
	log *slog.Logger,
	links *repositories.LinkRepo,
	clicks *repositories.ClickRepo,
	codes *CodeService,
	qr *QRService,
	qrSize int,
) *LinkService {
	return &LinkService{
		log:    log,
		links:  links,
		clicks: clicks,
		codes:  codes,
		qr:     qr,
		qrSize: qrSize,
	}
}

// CreateShortLink validates the destination, persists a link under a
// freshly minted code and encodes the short URL as a PNG. The store's
// unique index is the source of truth for code uniqueness: on collision
// the code is regenerated, up to createAttempts times.
//
// If encoding fails the already-persisted link row is kept. The caller
// gets the error; the link stays resolvable without an image.
func (s *LinkService) CreateShortLink(destinationURL, baseHost string) (*CreateResult, error) {
	const op = "services.link.CreateShortLink"

	if strings.TrimSpace(destinationURL) == "" {
		return nil, ErrInvalidInput
	}

	var link *entities.Link
	for i := 0; i < createAttempts; i++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		link, err = s.links.Create(code, destinationURL)
		if errors.Is(err, repositories.ErrCodeTaken) {
			s.log.Warn("code collision, retrying", slog.String("code", code))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		break
	}
	if link == nil {
		return nil, ErrCodeSpaceExhausted
	}

	shortURL := strings.TrimRight(baseHost, "/") + "/r/" + link.Code

	img, err := s.qr.Encode(shortURL, s.qrSize)
	if err != nil {
		s.log.Error("qr encoding failed after persist",
			slog.String("code", link.Code), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &CreateResult{Code: link.Code, ShortURL: shortURL, PNG: img}, nil
}

// Resolve returns the destination for code and accounts the access:
// increment the aggregate counter, then append a ledger entry. The
// destination is returned even when accounting fails; those failures are
// logged, never surfaced to the redirecting client.
func (s *LinkService) Resolve(code, userAgent, clientAddr string) (string, error) {
	link, err := s.links.GetByCode(code)
	if err != nil {
		return "", err
	}

	if _, err := s.links.IncrementClicks(code); err != nil {
		s.log.Error("click increment failed", slog.String("code", code), sl.Err(err))
	}
	if _, err := s.clicks.Create(code, userAgent, clientAddr); err != nil {
		s.log.Error("click ledger append failed", slog.String("code", code), sl.Err(err))
	}

	return link.Destination, nil
}

// Stats reports a single code's destination and click count.
func (s *LinkService) Stats(code string) (*LinkStats, error) {
	link, err := s.links.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return &LinkStats{Destination: link.Destination, Clicks: link.Clicks}, nil
}

// ListAll returns every link ordered by clicks descending for the
// dashboard view.
func (s *LinkService) ListAll() ([]entities.Link, error) {
	return s.links.List()
}

// ClicksForCode exposes the ledger entries for a code, oldest first.
func (s *LinkService) ClicksForCode(code string) ([]entities.ClickEvent, error) {
	if _, err := s.links.GetByCode(code); err != nil {
		return nil, err
	}
	return s.clicks.ListForCode(code)
}
