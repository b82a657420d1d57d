package services

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// base36, matching the codes the original data set was minted with
const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// CodeService mints short candidate codes. Codes are not guaranteed
// unique; the link service checks against the store and retries.
type CodeService struct {
	length int
}

func NewCodeService(length int) *CodeService {
	if length <= 0 {
		length = 6
	}
	return &CodeService{length: length}
}

func (s *CodeService) Generate() (string, error) {
	var b strings.Builder
	for i := 0; i < s.length; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[j.Int64()])
	}
	return b.String(), nil
}
