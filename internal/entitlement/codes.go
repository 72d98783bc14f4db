package entitlement

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"homepage/internal/models"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 16
	codeGroupLength = 4
)

// GenerateCode produces a redeem code of 16 characters drawn independently
// from [A-Z0-9], grouped by hyphens every 4 characters: XXXX-XXXX-XXXX-XXXX.
func GenerateCode() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))

	for i := 0; i < codeLength; i++ {
		if i > 0 && i%codeGroupLength == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating code character: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// CreateCodes generates count independent codes sharing the given type,
// value, and description, appends them to the stored list in one rewrite,
// and returns the newly created subset.
func (s *Service) CreateCodes(ctx context.Context, codeType, value, description string, count int) ([]models.RedeemCode, error) {
	now := time.Now().UTC()

	created := make([]models.RedeemCode, 0, count)
	for i := 0; i < count; i++ {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		created = append(created, models.RedeemCode{
			Code:        code,
			Type:        codeType,
			Value:       value,
			Description: description,
			Used:        false,
			CreatedAt:   now,
		})
	}

	err := s.registry.UpdateRedeemCodes(ctx, func(codes []models.RedeemCode) ([]models.RedeemCode, error) {
		return append(codes, created...), nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) ListCodes(ctx context.Context) ([]models.RedeemCode, error) {
	return s.registry.RedeemCodes(ctx)
}

// DeleteCode removes a code from the list regardless of whether it has been
// used. Returns ErrNotFound if no such code exists.
func (s *Service) DeleteCode(ctx context.Context, code string) error {
	return s.registry.UpdateRedeemCodes(ctx, func(codes []models.RedeemCode) ([]models.RedeemCode, error) {
		for i, c := range codes {
			if c.Code == code {
				return append(codes[:i], codes[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// Redeem marks an unused code as used by the given email. The transition is
// terminal: once used, usedBy and usedAt never change. An unknown code and a
// used code both fail with ErrCodeInvalid. On success the consumed record is
// returned so the caller can report its type and value; no VIP or verified
// record is created here.
func (s *Service) Redeem(ctx context.Context, code, email string) (models.RedeemCode, error) {
	var redeemed models.RedeemCode

	err := s.registry.UpdateRedeemCodes(ctx, func(codes []models.RedeemCode) ([]models.RedeemCode, error) {
		for i := range codes {
			if codes[i].Code != code || codes[i].Used {
				continue
			}
			now := time.Now().UTC()
			codes[i].Used = true
			codes[i].UsedBy = &email
			codes[i].UsedAt = &now
			redeemed = codes[i]
			return codes, nil
		}
		return nil, ErrCodeInvalid
	})
	if err != nil {
		return models.RedeemCode{}, err
	}

	return redeemed, nil
}
