package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zhivlux/storefront/internal/domain"
)

// ErrInvalidGameForm — базовая ошибка валидации формы админ-консоли.
var ErrInvalidGameForm = errors.New("game form validation failed")

// GameFormValidator — жадная валидация JSON-колонок формы до записи в backend.
// Смешанные формы variants отклоняются здесь, а не молча превращаются в пустой список.
type GameFormValidator struct{}

func NewGameFormValidator() *GameFormValidator { return &GameFormValidator{} }

// Validate — проверяет форму создания/обновления игры.
func (v *GameFormValidator) Validate(_ context.Context, form *domain.GameForm) error {
	if form == nil {
		return fmt.Errorf("%w: форма не может быть nil", ErrInvalidGameForm)
	}
	if form.Name == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidGameForm)
	}
	switch form.Category {
	case domain.CategoryGame, domain.CategoryApps, domain.CategoryVoucher:
	default:
		return fmt.Errorf("%w: category %q не поддерживается", ErrInvalidGameForm, form.Category)
	}
	switch form.Status {
	case "", domain.StatusActive, domain.StatusInactive, domain.StatusMaintenance:
	default:
		return fmt.Errorf("%w: status %q не поддерживается", ErrInvalidGameForm, form.Status)
	}
	if form.Rating < 0 || form.Rating > 5 {
		return fmt.Errorf("%w: rating должен быть в диапазоне [0,5]", ErrInvalidGameForm)
	}

	if form.Variants != "" {
		if _, err := domain.ParseVariants(form.Variants); err != nil {
			return fmt.Errorf("%w: variants: %v", ErrInvalidGameForm, err)
		}
	}
	if err := v.checkStringArray("instructions", form.Instructions); err != nil {
		return err
	}
	if err := v.checkStringArray("tags", form.Tags); err != nil {
		return err
	}
	if err := v.checkStringArray("platforms", form.Platforms); err != nil {
		return err
	}
	if form.UserFields != "" {
		var uf domain.UserFields
		if err := json.Unmarshal([]byte(form.UserFields), &uf); err != nil {
			return fmt.Errorf("%w: user_fields: %v", ErrInvalidGameForm, err)
		}
	}
	return nil
}

func (v *GameFormValidator) checkStringArray(field, raw string) error {
	if raw == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidGameForm, field, err)
	}
	return nil
}
