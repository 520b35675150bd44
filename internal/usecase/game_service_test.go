package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports/mocks"
	"github.com/zhivlux/storefront/pkg/validate"
)

func newGameFixture(t *testing.T) (*GameService, *mocks.MockGameRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	games := mocks.NewMockGameRepository(ctrl)
	return NewGameService(games, noopLogger{}), games
}

func TestCreate_DerivesSlugAndDefaults(t *testing.T) {
	svc, games := newGameFixture(t)

	games.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, form *domain.GameForm) (string, error) {
			if form.Slug != "mobile-legends-bang-bang" {
				t.Fatalf("unexpected slug %q", form.Slug)
			}
			if form.Status != domain.StatusActive {
				t.Fatalf("empty status must default to active, got %q", form.Status)
			}
			return "rec_new", nil
		})

	id, err := svc.Create(context.Background(), &domain.GameForm{
		Name:     "Mobile Legends: Bang Bang",
		Category: domain.CategoryGame,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "rec_new" {
		t.Fatalf("want rec_new, got %q", id)
	}
}

func TestCreate_InvalidFormSkipsRepository(t *testing.T) {
	// Репозиторий без ожиданий: невалидная форма не доходит до записи.
	svc, _ := newGameFixture(t)

	_, err := svc.Create(context.Background(), &domain.GameForm{
		Name:     "Broken",
		Category: "Gambling",
	})
	if !errors.Is(err, validate.ErrInvalidGameForm) {
		t.Fatalf("want ErrInvalidGameForm, got %v", err)
	}
}

func TestUpdate_MixedVariantsRejectedEagerly(t *testing.T) {
	svc, _ := newGameFixture(t)

	err := svc.Update(context.Background(), "rec1", map[string]any{
		"variants": `[{"name":"a","price":1},{"method":"login","name":"b","packages":[]}]`,
	})
	if !errors.Is(err, validate.ErrInvalidGameForm) {
		t.Fatalf("want ErrInvalidGameForm, got %v", err)
	}
}

func TestUpdate_ValidPatchReachesRepository(t *testing.T) {
	svc, games := newGameFixture(t)

	patch := map[string]any{
		"variants": `[{"name":"86 Diamonds","price":20000}]`,
		"rating":   4.9,
	}
	games.EXPECT().Update(gomock.Any(), "rec1", patch).Return(nil)

	if err := svc.Update(context.Background(), "rec1", patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	svc, _ := newGameFixture(t)

	if err := svc.Update(context.Background(), "rec1", nil); err == nil {
		t.Fatal("empty patch must be rejected")
	}
}

func TestPopularGames_LimitsResult(t *testing.T) {
	svc, games := newGameFixture(t)

	many := make([]domain.Product, 10)
	for i := range many {
		many[i] = domain.Product{ID: string(rune('a' + i)), IsPopular: true}
	}
	games.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.GameFilters) ([]domain.Product, error) {
			if f.IsPopular == nil || !*f.IsPopular {
				t.Fatalf("popular filter must be set, got %+v", f)
			}
			if f.Status != string(domain.StatusActive) {
				t.Fatalf("popular selection must be limited to active games, got %q", f.Status)
			}
			return many, nil
		})

	got, err := svc.PopularGames(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("default limit is 8, got %d", len(got))
	}
}

func TestUpdateGameStatus(t *testing.T) {
	svc, games := newGameFixture(t)

	games.EXPECT().Update(gomock.Any(), "rec1", map[string]any{"status": "maintenance"}).Return(nil)
	if err := svc.UpdateGameStatus(context.Background(), "rec1", domain.StatusMaintenance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.UpdateGameStatus(context.Background(), "rec1", "paused"); err == nil {
		t.Fatal("unknown status must be rejected")
	}
}

func TestTogglePopularity(t *testing.T) {
	svc, games := newGameFixture(t)

	games.EXPECT().Update(gomock.Any(), "rec1", map[string]any{"is_popular": true}).Return(nil)
	if err := svc.TogglePopularity(context.Background(), "rec1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Mobile Legends: Bang Bang": "mobile-legends-bang-bang",
		"PUBG Mobile":               "pubg-mobile",
		"  Steam Wallet (IDR)  ":    "steam-wallet-idr",
		"Valorant":                  "valorant",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q): want %q, got %q", in, want, got)
		}
	}
}
