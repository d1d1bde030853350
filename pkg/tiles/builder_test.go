package tiles

import (
	"testing"

	"github.com/tilefield/tilefield/pkg/errors"
)

func TestBuilderDefaults(t *testing.T) {
	cfg, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	def := DefaultConfig()
	if cfg.CountX != def.CountX || cfg.TileSize != def.TileSize || cfg.Seeds != def.Seeds {
		t.Errorf("Build() without overrides = %+v, want defaults", cfg)
	}
}

func TestBuilderOverrides(t *testing.T) {
	cfg, err := NewBuilder().
		Grid(3, 3).
		Tile(40, 4, 6).
		IconSize(20).
		Opacity(0.2, 0.9).
		OpacityShape(1.3, 2).
		Scale(0.5, 0.9).
		Center(1, 1).
		Seeds(Seeds{1, 1, 1, 1, 1}).
		Palette(PaletteEntry{Color: "red", Weight: 1}).
		Icons("<circle/>").
		Exclude(Rect{X: 0, Y: 0, X2: 0, Y2: 0}).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if cfg.CountX != 3 || cfg.CountY != 3 {
		t.Errorf("grid = %dx%d, want 3x3", cfg.CountX, cfg.CountY)
	}
	if cfg.TileSize != 40 || cfg.TileGap != 4 || cfg.TileRadius != 6 || cfg.IconSize != 20 {
		t.Errorf("tile geometry not applied: %+v", cfg)
	}
	if cfg.MinOpacity != 0.2 || cfg.MaxOpacity != 0.9 || cfg.OpacityMult != 1.3 || cfg.OpacityPower != 2 {
		t.Errorf("opacity not applied: %+v", cfg)
	}
	if x, y := cfg.Center(); x != 1 || y != 1 {
		t.Errorf("Center() = (%d, %d), want (1, 1)", x, y)
	}
	if len(cfg.Palette) != 1 || len(cfg.Icons) != 1 || len(cfg.Exclusions) != 1 {
		t.Errorf("collections not applied: %+v", cfg)
	}
	// Untouched fields keep defaults.
	if cfg.MaxTileScale != 0.9 || cfg.MinTileScale != 0.5 {
		t.Errorf("scale = [%v, %v], want [0.5, 0.9]", cfg.MinTileScale, cfg.MaxTileScale)
	}
}

func TestBuilderInvalidRect(t *testing.T) {
	_, err := NewBuilder().Exclude(Rect{X: 5, Y: 0, X2: 2, Y2: 0}).Build()
	if !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("Build() = %v, want INVALID_RECT", err)
	}
}

func TestBuilderIsolation(t *testing.T) {
	icons := []string{"a", "b"}
	b := NewBuilder().Icons(icons...)
	icons[0] = "changed"

	cfg, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Icons[0] != "a" {
		t.Error("Builder observed mutation of the caller's slice")
	}

	cfg.Icons[1] = "changed"
	again, _ := b.Build()
	if again.Icons[1] != "b" {
		t.Error("Build() results share state")
	}
}

func TestBuilderFromAndApply(t *testing.T) {
	base := DefaultConfig()
	base.CountX = 9
	cfg, err := From(base).Apply(func(c *Config) { c.TileGap = 2 }).Build()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CountX != 9 || cfg.TileGap != 2 {
		t.Errorf("From/Apply = %+v", cfg)
	}
	if base.TileGap == 2 {
		t.Error("Apply mutated the base config")
	}
}
