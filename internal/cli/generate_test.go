package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/avagen/avagen/pkg/avagen"
)

// newOptsCmd binds the optional numeric flags so tests can exercise the
// explicit-vs-unset distinction.
func newOptsCmd(opts *generateOpts) *cobra.Command {
	cmd := &cobra.Command{}
	f := cmd.Flags()
	f.IntVar(&opts.blur, "blur", 0, "")
	f.IntVar(&opts.rotate, "rotate", 0, "")
	f.Uint64Var(&opts.seed, "seed", 0, "")
	return cmd
}

func TestAvatarConfigOptionalFlagsUnset(t *testing.T) {
	opts := generateOpts{size: 100, border: "#000000"}
	cmd := newOptsCmd(&opts)

	cfg, err := opts.avatarConfig(cmd)
	if err != nil {
		t.Fatalf("avatarConfig() error: %v", err)
	}

	if cfg.BlurRadius != nil {
		t.Error("unset --blur should leave BlurRadius nil")
	}
	if cfg.RotateDegrees != nil {
		t.Error("unset --rotate should leave RotateDegrees nil")
	}
	if cfg.Seed != nil {
		t.Error("unset --seed should leave Seed nil")
	}
}

func TestAvatarConfigExplicitZeroFlags(t *testing.T) {
	opts := generateOpts{size: 100, border: "#000000"}
	cmd := newOptsCmd(&opts)

	for _, flag := range []string{"blur", "rotate", "seed"} {
		if err := cmd.Flags().Set(flag, "0"); err != nil {
			t.Fatalf("set --%s: %v", flag, err)
		}
	}

	cfg, err := opts.avatarConfig(cmd)
	if err != nil {
		t.Fatalf("avatarConfig() error: %v", err)
	}

	if cfg.BlurRadius == nil || *cfg.BlurRadius != 0 {
		t.Error("--blur 0 should set an explicit zero blur radius")
	}
	if cfg.RotateDegrees == nil || *cfg.RotateDegrees != 0 {
		t.Error("--rotate 0 should set an explicit zero rotation")
	}
	if cfg.Seed == nil || *cfg.Seed != 0 {
		t.Error("--seed 0 should set an explicit zero seed")
	}
}

func TestAvatarConfigColorSelection(t *testing.T) {
	opts := generateOpts{size: 100, colors: "#ff0000,#00ff00"}
	cfg, err := opts.avatarConfig(newOptsCmd(&opts))
	if err != nil {
		t.Fatalf("avatarConfig() error: %v", err)
	}
	if len(cfg.ColorList) != 2 || cfg.ColorList[0] != "#ff0000" {
		t.Errorf("ColorList = %v, want the parsed --colors list", cfg.ColorList)
	}

	opts = generateOpts{size: 100, palette: "material"}
	cfg, err = opts.avatarConfig(newOptsCmd(&opts))
	if err != nil {
		t.Fatalf("avatarConfig() error: %v", err)
	}
	if len(cfg.ColorList) != 20 {
		t.Errorf("palette material should map to 20 colors, got %d", len(cfg.ColorList))
	}

	opts = generateOpts{size: 100, palette: "random"}
	cfg, err = opts.avatarConfig(newOptsCmd(&opts))
	if err != nil {
		t.Fatalf("avatarConfig() error: %v", err)
	}
	if cfg.ColorList == nil || len(cfg.ColorList) != 0 {
		t.Error("palette random should map to the explicit empty color list")
	}

	opts = generateOpts{size: 100, palette: "neon"}
	if _, err := opts.avatarConfig(newOptsCmd(&opts)); err == nil {
		t.Error("unknown palette should fail")
	}
}

func TestOutputPath(t *testing.T) {
	opts := generateOpts{count: 1, out: "me.png"}
	if got := opts.outputPath(avagen.Square, 0); got != "me.png" {
		t.Errorf("outputPath = %q, want me.png", got)
	}

	opts = generateOpts{count: 1}
	if got := opts.outputPath(avagen.Char, 0); got != "char.png" {
		t.Errorf("outputPath = %q, want char.png", got)
	}

	opts = generateOpts{count: 3}
	a := opts.outputPath(avagen.Square, 0)
	b := opts.outputPath(avagen.Square, 1)
	if !strings.HasPrefix(a, "square-") || !strings.HasSuffix(a, ".png") {
		t.Errorf("batch path %q should look like square-<id>.png", a)
	}
	if a == b {
		t.Error("batch paths should be unique")
	}
}
