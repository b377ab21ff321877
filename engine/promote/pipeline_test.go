package promote

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/engine/mined"
	"github.com/luxweave/luxweave/engine/recipe"
	"github.com/luxweave/luxweave/engine/synth"
	"github.com/luxweave/luxweave/pkg/config"
	"github.com/luxweave/luxweave/pkg/logger"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	synthesizer, err := synth.NewSynthesizer()
	require.NoError(t, err)
	p, err := NewPipeline(config.PromotionConfig{MinSupport: 3, MinStability: 0.6}, synthesizer)
	require.NoError(t, err)
	return p
}

func testCtx() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewNopLogger())
}

func tpl(id string, support int, stability float64, family, motion, color string) *mined.Template {
	return &mined.Template{
		ID:           id,
		EffectFamily: family,
		MotionClass:  motion,
		EnergyClass:  "high",
		ColorClass:   color,
		Support:      support,
		Stability:    stability,
		Amplitude:    0.5,
	}
}

func TestPipelineRun(t *testing.T) {
	p := newPipeline(t)

	t.Run("Should drop templates below quality thresholds", func(t *testing.T) {
		batch := []*mined.Template{
			tpl("weak-support", 2, 0.9, "pulse", "rising", "warm"),
			tpl("weak-stability", 10, 0.5, "sweep", "falling", "cool"),
			tpl("strong", 10, 0.9, "strobe", "static", "warm"),
		}
		report, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		assert.Equal(t, StatusRejectedQuality, report.Outcomes[0].Status)
		assert.Equal(t, StatusRejectedQuality, report.Outcomes[1].Status)
		assert.Equal(t, StatusPromoted, report.Outcomes[2].Status)
		require.Len(t, report.Promoted, 1)
		assert.Equal(t, core.ID("mined:strong"), report.Promoted[0].ID)
	})

	t.Run("Should keep one representative per similarity cluster", func(t *testing.T) {
		batch := []*mined.Template{
			tpl("a", 5, 0.7, "pulse", "rising", "warm"),
			tpl("b", 5, 0.9, "pulse", "rising", "warm"),
			tpl("c", 5, 0.8, "pulse", "rising", "warm"),
			tpl("other", 5, 0.7, "wash", "static", "cool"),
		}
		report, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		assert.Equal(t, StatusRejectedDedup, report.Outcomes[0].Status)
		assert.Contains(t, report.Outcomes[0].Reason, "duplicate of b")
		assert.Equal(t, StatusPromoted, report.Outcomes[1].Status)
		assert.Equal(t, StatusRejectedDedup, report.Outcomes[2].Status)
		assert.Equal(t, StatusPromoted, report.Outcomes[3].Status)
		require.Len(t, report.Promoted, 2)
	})

	t.Run("Should break dedup ties by support then id", func(t *testing.T) {
		batch := []*mined.Template{
			tpl("zeta", 5, 0.8, "pulse", "rising", "warm"),
			tpl("alpha", 5, 0.8, "pulse", "rising", "warm"),
			tpl("beta", 9, 0.8, "pulse", "rising", "warm"),
		}
		report, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		require.Len(t, report.Promoted, 1)
		assert.Equal(t, core.ID("mined:beta"), report.Promoted[0].ID, "highest support wins the tie")

		batch2 := []*mined.Template{
			tpl("zeta", 5, 0.8, "pulse", "rising", "warm"),
			tpl("alpha", 5, 0.8, "pulse", "rising", "warm"),
		}
		report2, err := p.Run(testCtx(), batch2)
		require.NoError(t, err)
		require.Len(t, report2.Promoted, 1)
		assert.Equal(t, core.ID("mined:alpha"), report2.Promoted[0].ID, "lexicographically first id wins")
	})

	t.Run("Should choose the same representative regardless of input order", func(t *testing.T) {
		forward := []*mined.Template{
			tpl("a", 4, 0.7, "pulse", "rising", "warm"),
			tpl("b", 8, 0.7, "pulse", "rising", "warm"),
			tpl("c", 8, 0.9, "pulse", "rising", "warm"),
		}
		reversed := []*mined.Template{
			tpl("c", 8, 0.9, "pulse", "rising", "warm"),
			tpl("b", 8, 0.7, "pulse", "rising", "warm"),
			tpl("a", 4, 0.7, "pulse", "rising", "warm"),
		}
		r1, err := p.Run(testCtx(), forward)
		require.NoError(t, err)
		r2, err := p.Run(testCtx(), reversed)
		require.NoError(t, err)
		require.Len(t, r1.Promoted, 1)
		require.Len(t, r2.Promoted, 1)
		assert.Equal(t, r1.Promoted[0].ID, r2.Promoted[0].ID)
	})

	t.Run("Should isolate mapping failures without aborting the batch", func(t *testing.T) {
		bad := tpl("bad", 10, 0.9, "pulse", "rising", "warm")
		bad.ColorClass = "ultraviolet"
		batch := []*mined.Template{
			bad,
			tpl("good", 10, 0.9, "sweep", "falling", "cool"),
		}
		report, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		assert.Equal(t, StatusRejectedMapping, report.Outcomes[0].Status)
		assert.Contains(t, report.Outcomes[0].Reason, "ultraviolet")
		require.Len(t, report.Promoted, 1)
		assert.Equal(t, core.ID("mined:good"), report.Promoted[0].ID)
	})

	t.Run("Should be idempotent over the same input snapshot", func(t *testing.T) {
		batch := []*mined.Template{
			tpl("a", 5, 0.9, "pulse", "rising", "warm"),
			tpl("b", 2, 0.9, "sweep", "falling", "cool"),
			tpl("c", 5, 0.8, "pulse", "rising", "warm"),
			tpl("d", 5, 0.7, "chase", "oscillating", "rainbow"),
		}
		r1, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		r2, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(r1.Outcomes, r2.Outcomes))
		assert.Empty(t, cmp.Diff(r1.Promoted, r2.Promoted, cmpopts.IgnoreUnexported(recipe.ParamValue{})))
	})

	t.Run("Should report counts by status", func(t *testing.T) {
		batch := []*mined.Template{
			tpl("a", 5, 0.9, "pulse", "rising", "warm"),
			tpl("b", 1, 0.9, "sweep", "falling", "cool"),
		}
		report, err := p.Run(testCtx(), batch)
		require.NoError(t, err)
		counts := report.CountByStatus()
		assert.Equal(t, 1, counts[StatusPromoted])
		assert.Equal(t, 1, counts[StatusRejectedQuality])
	})
}

func TestNewPipeline(t *testing.T) {
	t.Run("Should reject out-of-range thresholds", func(t *testing.T) {
		synthesizer, err := synth.NewSynthesizer()
		require.NoError(t, err)
		_, err = NewPipeline(config.PromotionConfig{MinSupport: -1}, synthesizer)
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should require a synthesizer", func(t *testing.T) {
		_, err := NewPipeline(config.PromotionConfig{}, nil)
		assert.Error(t, err)
	})
}
