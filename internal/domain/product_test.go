package domain_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/zhivlux/storefront/internal/domain"
)

const flatVariantsJSON = `[
	{"name":"86 Diamonds","price":20000,"description":"Basic diamond package"},
	{"name":"172 Diamonds","price":40000,"description":"Popular choice"}
]`

const robloxVariantsJSON = `[
	{"method":"gamepass","name":"Via Gamepass","description":"safer","packages":[
		{"name":"80 Robux","price":15000},
		{"name":"400 Robux","price":70000}
	]},
	{"method":"login","name":"Via Login","description":"faster","packages":[
		{"name":"80 Robux","price":12000},
		{"name":"400 Robux","price":58000}
	]}
]`

func TestParseVariants_Flat(t *testing.T) {
	t.Parallel()

	vs, err := domain.ParseVariants(flatVariantsJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vs.IsMethodBased() {
		t.Fatalf("flat list must not be method based")
	}
	flat := vs.Flat()
	if len(flat) != 2 || flat[0].Name != "86 Diamonds" || flat[0].Price != 20000 {
		t.Fatalf("unexpected flat variants: %+v", flat)
	}
}

// Roblox-сценарий: две группы способов, пакеты не смешиваются между группами,
// плоское представление недоступно.
func TestParseVariants_MethodGroups(t *testing.T) {
	t.Parallel()

	vs, err := domain.ParseVariants(robloxVariantsJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vs.IsMethodBased() {
		t.Fatalf("expected method based set")
	}
	if vs.Flat() != nil {
		t.Fatalf("method based set must not expose flat variants, got %+v", vs.Flat())
	}

	gp, ok := vs.PackagesFor("gamepass")
	if !ok || len(gp) != 2 || gp[0].Price != 15000 {
		t.Fatalf("gamepass packages wrong: ok=%v %+v", ok, gp)
	}
	login, ok := vs.PackagesFor("login")
	if !ok || len(login) != 2 || login[0].Price != 12000 {
		t.Fatalf("login packages wrong: ok=%v %+v", ok, login)
	}
	if gp[1].Price == login[1].Price {
		t.Fatalf("packages leaked between methods: %+v vs %+v", gp, login)
	}
	if _, ok := vs.PackagesFor("unknown"); ok {
		t.Fatalf("unknown method must miss")
	}
}

// Смешанные формы отклоняются на границе парсинга.
func TestParseVariants_MixedShapes_Rejected(t *testing.T) {
	t.Parallel()

	mixed := `[
		{"name":"86 Diamonds","price":20000},
		{"method":"login","name":"Via Login","packages":[{"name":"80 Robux","price":12000}]}
	]`
	_, err := domain.ParseVariants(mixed)
	if !errors.Is(err, domain.ErrMixedVariantShapes) {
		t.Fatalf("want ErrMixedVariantShapes, got %v", err)
	}
}

func TestParseVariants_EmptyAndInvalid(t *testing.T) {
	t.Parallel()

	vs, err := domain.ParseVariants("")
	if err != nil || !vs.IsEmpty() {
		t.Fatalf("empty raw: want empty set, got %+v err=%v", vs, err)
	}
	if _, err := domain.ParseVariants("{not json"); err == nil {
		t.Fatalf("invalid json must fail")
	}
}

func TestVariantSet_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]string{"flat": flatVariantsJSON, "methods": robloxVariantsJSON} {
		vs, err := domain.ParseVariants(raw)
		if err != nil {
			t.Fatalf("%s: parse: %v", name, err)
		}
		out, err := json.Marshal(vs)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		var back domain.VariantSet
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}
		if !reflect.DeepEqual(vs, back) {
			t.Fatalf("%s: round trip mismatch:\n%+v\n%+v", name, vs, back)
		}
	}
}

// Сериализация снапшота каталога структурно стабильна (кэш хранит JSON).
func TestCatalogSnapshot_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	vs, err := domain.ParseVariants(flatVariantsJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	snap := domain.CatalogSnapshot{
		Products: []domain.Product{{
			ID:         "1",
			Name:       "Mobile Legends",
			Category:   domain.CategoryGame,
			IsPopular:  true,
			Variants:   vs,
			UserFields: domain.DefaultUserFields(),
			Status:     domain.StatusActive,
		}},
		Banners:    []domain.Banner{{ID: "1", ImageURL: "https://img.example/b1.jpg", IsActive: true}},
		Categories: []string{domain.CategoryGame},
	}
	snap.PopularProducts = snap.Products

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back domain.CatalogSnapshot
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(snap, back) {
		t.Fatalf("snapshot round trip mismatch:\n%+v\n%+v", snap, back)
	}
}

func TestPaymentRequest_TotalAmount(t *testing.T) {
	t.Parallel()

	req := domain.PaymentRequest{
		ProductName: "Mobile Legends",
		Variant:     domain.Variant{Name: "86 Diamonds", Price: 20000},
		Method:      domain.PaymentMethod{ID: "dana", Name: "DANA", Fee: 0},
	}
	if got := req.TotalAmount(); got != 20000 {
		t.Fatalf("fee=0: want 20000, got %d", got)
	}
	req.Method.Fee = 2500
	if got := req.TotalAmount(); got != 22500 {
		t.Fatalf("fee=2500: want 22500, got %d", got)
	}
}
