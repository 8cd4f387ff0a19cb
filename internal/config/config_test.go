package config

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

func newFlagSetWithCatalog(catalog string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("catalog", "c", catalog, "")
	flags.IntP("capacity", "C", 50, "")
	flags.IntP("beam", "b", 400, "")
	flags.Bool("debug", false, "")
	flags.BoolP("quiet", "q", false, "")
	flags.Int("money", 1000, "")
	flags.Int("wood", 100, "")
	flags.Int("cement", 100, "")
	flags.Int("steel", 100, "")
	flags.String("config", "", "")
	flags.StringP("out", "o", "", "")
	return flags
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(newFlagSetWithCatalog("testdata.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Blocks != 1 {
		t.Errorf("Blocks = %d, want default 1", cfg.Blocks)
	}
	if cfg.BeamWidth != 400 {
		t.Errorf("BeamWidth = %d, want default 400", cfg.BeamWidth)
	}
	if cfg.StartingResources.Money != 1000 {
		t.Errorf("StartingResources.Money = %d, want default 1000", cfg.StartingResources.Money)
	}
}

func TestLoadAppliesOverriddenFlags(t *testing.T) {
	flags := newFlagSetWithCatalog("testdata.json")
	if err := flags.Set("beam", "999"); err != nil {
		t.Fatalf("failed to set beam flag: %v", err)
	}
	if err := flags.Set("money", "42"); err != nil {
		t.Fatalf("failed to set money flag: %v", err)
	}
	if err := flags.Set("wood", "43"); err != nil {
		t.Fatalf("failed to set wood flag: %v", err)
	}
	if err := flags.Set("cement", "44"); err != nil {
		t.Fatalf("failed to set cement flag: %v", err)
	}
	if err := flags.Set("steel", "45"); err != nil {
		t.Fatalf("failed to set steel flag: %v", err)
	}
	if err := flags.Set("out", "result.json"); err != nil {
		t.Fatalf("failed to set out flag: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BeamWidth != 999 {
		t.Errorf("BeamWidth = %d, want 999 from --beam", cfg.BeamWidth)
	}
	if cfg.StartingResources.Money != 42 {
		t.Errorf("StartingResources.Money = %d, want 42 from --money", cfg.StartingResources.Money)
	}
	if cfg.StartingResources.Wood != 43 {
		t.Errorf("StartingResources.Wood = %d, want 43 from --wood", cfg.StartingResources.Wood)
	}
	if cfg.StartingResources.Cement != 44 {
		t.Errorf("StartingResources.Cement = %d, want 44 from --cement", cfg.StartingResources.Cement)
	}
	if cfg.StartingResources.Steel != 45 {
		t.Errorf("StartingResources.Steel = %d, want 45 from --steel", cfg.StartingResources.Steel)
	}
	if cfg.Output != "result.json" {
		t.Errorf("Output = %q, want %q from --out", cfg.Output, "result.json")
	}
}

func TestLoadRejectsMissingCatalog(t *testing.T) {
	_, err := Load(newFlagSetWithCatalog(""))
	if !errors.Is(err, blockerr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestLoadIsDeterministic(t *testing.T) {
	first, err := Load(newFlagSetWithCatalog("testdata.json"))
	if err != nil {
		t.Fatalf("first Load returned error: %v", err)
	}
	second, err := Load(newFlagSetWithCatalog("testdata.json"))
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if *first != *second {
		t.Errorf("Load is not deterministic for identical flags: %+v vs %+v", first, second)
	}
}
