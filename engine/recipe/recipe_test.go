package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxweave/luxweave/engine/core"
)

func validLayer() *RecipeLayer {
	return &RecipeLayer{
		EffectType: "pulse_wave",
		Params: map[string]*ParamValue{
			"speed": NewLiteralParam(0.5),
		},
		BlendMode: BlendReplace,
		Mix:       1.0,
		Density:   0.8,
	}
}

func TestNewEffectRecipe(t *testing.T) {
	t.Run("Should construct a valid recipe", func(t *testing.T) {
		r, err := NewEffectRecipe(
			"builtin:pulse",
			"verse",
			[]*RecipeLayer{validLayer()},
			PaletteSpec{RoleColor(RolePrimary)},
			BuiltinProvenance("pulse"),
		)
		require.NoError(t, err)
		assert.Equal(t, core.ID("builtin:pulse"), r.ID)
		assert.Equal(t, 1, r.LayerCount())
		assert.Equal(t, []string{"pulse_wave"}, r.EffectTypes())
	})

	t.Run("Should reject an empty layer list", func(t *testing.T) {
		_, err := NewEffectRecipe("r1", "", nil, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject a missing id", func(t *testing.T) {
		_, err := NewEffectRecipe("", "", []*RecipeLayer{validLayer()}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject mix outside [0,1]", func(t *testing.T) {
		layer := validLayer()
		layer.Mix = 1.2
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject an unknown blend mode", func(t *testing.T) {
		layer := validLayer()
		layer.BlendMode = "overlay"
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject a layer with no parameters", func(t *testing.T) {
		layer := validLayer()
		layer.Params = nil
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject a malformed expression", func(t *testing.T) {
		layer := validLayer()
		layer.Params["bad"] = NewDynamicParam("energy *")
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject an expression over disallowed names", func(t *testing.T) {
		layer := validLayer()
		layer.Params["bad"] = NewDynamicParam("tempo * 2.0")
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject inverted clamp bounds", func(t *testing.T) {
		layer := validLayer()
		layer.Params["speed"] = NewDynamicParam("energy * 0.8").WithBounds(1, 0)
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject an unknown palette role", func(t *testing.T) {
		_, err := NewEffectRecipe(
			"r1",
			"",
			[]*RecipeLayer{validLayer()},
			PaletteSpec{RoleColor("PALETTE_TERTIARY")},
			BuiltinProvenance("x"),
		)
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject model affinity outside [0,1]", func(t *testing.T) {
		_, err := NewEffectRecipe(
			"r1",
			"",
			[]*RecipeLayer{validLayer()},
			nil,
			BuiltinProvenance("x"),
			WithModelAffinity(map[string]float64{"moving_head": 1.4}),
		)
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject a param with both literal and expression", func(t *testing.T) {
		layer := validLayer()
		layer.Params["both"] = &ParamValue{Literal: 1.0, Expression: "energy"}
		_, err := NewEffectRecipe("r1", "", []*RecipeLayer{layer}, nil, BuiltinProvenance("x"))
		require.Error(t, err)
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})
}

func TestParseColorSource(t *testing.T) {
	t.Run("Should parse hex literals", func(t *testing.T) {
		src, err := ParseColorSource("#FF8800")
		require.NoError(t, err)
		assert.True(t, src.IsLiteral())
		assert.Equal(t, "#FF8800", src.Literal)
	})

	t.Run("Should parse known roles case-insensitively", func(t *testing.T) {
		src, err := ParseColorSource("palette_accent")
		require.NoError(t, err)
		assert.Equal(t, RoleAccent, src.Role)
	})

	t.Run("Should reject malformed hex literals", func(t *testing.T) {
		_, err := ParseColorSource("#GGHHII")
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})

	t.Run("Should reject unknown roles", func(t *testing.T) {
		_, err := ParseColorSource("PALETTE_FIFTH")
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})
}

func TestParseBlendMode(t *testing.T) {
	t.Run("Should accept every known mode", func(t *testing.T) {
		for _, mode := range []string{"replace", "add", "multiply", "screen"} {
			parsed, err := ParseBlendMode(mode)
			require.NoError(t, err)
			assert.Equal(t, BlendMode(mode), parsed)
		}
	})

	t.Run("Should reject unknown modes", func(t *testing.T) {
		_, err := ParseBlendMode("difference")
		assert.True(t, core.IsCode(err, core.CodeValidation))
	})
}
