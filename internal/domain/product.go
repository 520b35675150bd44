package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Статусы товара в каталоге.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// Категории каталога.
const (
	CategoryGame    = "Game"
	CategoryApps    = "Apps"
	CategoryVoucher = "Voucher"
)

// ErrMixedVariantShapes — в одном списке вариантов смешаны плоские пакеты
// и группы способов пополнения. Такая запись отклоняется на границе парсинга.
var ErrMixedVariantShapes = errors.New("mixed variant shapes")

// Variant — один пакет пополнения (номинал + цена).
type Variant struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
}

// MethodGroup — группа пакетов для товаров с несколькими способами
// пополнения (например, gamepass/login у Roblox).
type MethodGroup struct {
	Method      string    `json:"method"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Packages    []Variant `json:"packages"`
}

// VariantSet — размеченное объединение двух форм колонки variants:
// либо плоский список Variant, либо список MethodGroup. Дискриминант —
// наличие поля "method" у элементов; смешанные формы невалидны.
type VariantSet struct {
	flat    []Variant
	methods []MethodGroup
}

// FlatVariants — конструктор плоского набора.
func FlatVariants(vs []Variant) VariantSet { return VariantSet{flat: vs} }

// MethodVariants — конструктор набора с группами способов.
func MethodVariants(ms []MethodGroup) VariantSet { return VariantSet{methods: ms} }

// IsMethodBased — true, если набор состоит из групп способов.
func (v VariantSet) IsMethodBased() bool { return len(v.methods) > 0 }

// IsEmpty — true, если набор пуст в обеих формах.
func (v VariantSet) IsEmpty() bool { return len(v.flat) == 0 && len(v.methods) == 0 }

// Flat — плоский список пакетов (nil для method-based набора).
func (v VariantSet) Flat() []Variant { return v.flat }

// Methods — список групп способов (nil для плоского набора).
func (v VariantSet) Methods() []MethodGroup { return v.methods }

// PackagesFor — пакеты выбранного способа. Для плоского набора способ
// не применим — (nil, false).
func (v VariantSet) PackagesFor(method string) ([]Variant, bool) {
	for i := range v.methods {
		if v.methods[i].Method == method {
			return v.methods[i].Packages, true
		}
	}
	return nil, false
}

func (v VariantSet) MarshalJSON() ([]byte, error) {
	if v.IsMethodBased() {
		return json.Marshal(v.methods)
	}
	if v.flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.flat)
}

func (v *VariantSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("variants: %w", err)
	}
	if len(raw) == 0 {
		*v = VariantSet{}
		return nil
	}

	// Пробуем дискриминант по каждому элементу.
	withMethod := 0
	for _, el := range raw {
		var probe struct {
			Method *string `json:"method"`
		}
		if err := json.Unmarshal(el, &probe); err != nil {
			return fmt.Errorf("variants element: %w", err)
		}
		if probe.Method != nil && *probe.Method != "" {
			withMethod++
		}
	}

	switch {
	case withMethod == 0:
		var flat []Variant
		if err := json.Unmarshal(data, &flat); err != nil {
			return fmt.Errorf("flat variants: %w", err)
		}
		*v = VariantSet{flat: flat}
	case withMethod == len(raw):
		var methods []MethodGroup
		if err := json.Unmarshal(data, &methods); err != nil {
			return fmt.Errorf("method variants: %w", err)
		}
		*v = VariantSet{methods: methods}
	default:
		return fmt.Errorf("%w: %d of %d elements carry a method", ErrMixedVariantShapes, withMethod, len(raw))
	}
	return nil
}

// ParseVariants — разбор строковой JSON-колонки variants.
func ParseVariants(raw string) (VariantSet, error) {
	if raw == "" {
		return VariantSet{}, nil
	}
	var v VariantSet
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return VariantSet{}, err
	}
	return v, nil
}

// UserField — описание поля, которое пользователь заполняет при покупке.
type UserField struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
}

// UserFields — набор полей покупки; zoneId есть не у всех игр.
type UserFields struct {
	UserID UserField  `json:"userId"`
	ZoneID *UserField `json:"zoneId,omitempty"`
}

// DefaultUserFields — значение по умолчанию при отсутствии/порче колонки.
func DefaultUserFields() UserFields {
	return UserFields{UserID: UserField{Label: "User ID", Placeholder: "Enter User ID", Required: true}}
}

// Product — товар каталога в прикладном (разобранном) виде.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category"`
	IsPopular    bool       `json:"isPopular"`
	ImageURL     string     `json:"imageUrl"`
	Variants     VariantSet `json:"variants"`
	CurrencyName string     `json:"currencyName,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	UserFields   UserFields `json:"userFields"`
	Tags         []string   `json:"tags,omitempty"`
	Platforms    []string   `json:"platforms,omitempty"`
	Rating       float64    `json:"rating"`
	TotalReviews int        `json:"totalReviews"`
	Status       Status     `json:"status"`
}

// Banner — баннер главной страницы.
type Banner struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	IsActive bool   `json:"isActive"`
}

// CatalogSnapshot — агрегат одного цикла загрузки каталога.
// Принадлежит загрузчику на время fetch-цикла, наружу отдаётся как
// неизменяемый результат.
type CatalogSnapshot struct {
	Products        []Product `json:"products"`
	Banners         []Banner  `json:"banners"`
	Categories      []string  `json:"categories"`
	PopularProducts []Product `json:"popularProducts"`
}

// GameFilters — фильтры выборки каталога.
type GameFilters struct {
	Category  string
	IsPopular *bool
	Status    string
	Search    string
}

// GameForm — форма админ-консоли; JSON-колонки приходят строками
// и валидируются жадно до записи.
type GameForm struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	IsPopular    bool    `json:"is_popular"`
	ImageURL     string  `json:"image_url"`
	CurrencyName string  `json:"currency_name"`
	Rating       float64 `json:"rating"`
	Status       Status  `json:"status"`
	Variants     string  `json:"variants"`
	Instructions string  `json:"instructions"`
	UserFields   string  `json:"user_fields"`
	Tags         string  `json:"tags"`
	Platforms    string  `json:"platforms"`
}

// GameStats — агрегаты для админ-дашборда.
type GameStats struct {
	TotalGames   int            `json:"total_games"`
	PopularGames int            `json:"popular_games"`
	Categories   map[string]int `json:"categories"`
	AvgRating    float64        `json:"avg_rating"`
	TotalReviews int            `json:"total_reviews"`
}
