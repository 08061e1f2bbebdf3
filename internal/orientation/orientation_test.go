package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/cratepack/internal/model"
)

func TestAll_Carton_TwoOrientations(t *testing.T) {
	dims := model.Dimensions{W: 10, L: 20, H: 5}
	all := All(dims, model.Carton)
	assert.Len(t, all, 2, "CARTON boxes may only stand upright or rotate around Z")
}

func TestAll_PrePack_FourOrientations_WhenTaller(t *testing.T) {
	dims := model.Dimensions{W: 10, L: 5, H: 20}
	all := All(dims, model.PrePack)
	assert.Len(t, all, 4, "PRE_PACK adds on-side orientations when H > L")
}

func TestAll_PrePack_TwoOrientations_WhenNotTaller(t *testing.T) {
	dims := model.Dimensions{W: 10, L: 20, H: 5}
	all := All(dims, model.PrePack)
	assert.Len(t, all, 2)
}

func TestCanFit_PrefersSmallestBaseArea(t *testing.T) {
	dims := model.Dimensions{W: 10, L: 5, H: 20}
	got, ok := CanFit(dims, model.PrePack, 100, 100, 100, true)
	assert.True(t, ok)
	assert.Equal(t, 50.0, got.W*got.L, "the two canonical orientations have a smaller base area than the on-end ones")
}

func TestCanFit_NoRotation_RestrictsToCanonical(t *testing.T) {
	dims := model.Dimensions{W: 10, L: 30, H: 5}
	got, ok := CanFit(dims, model.Carton, 100, 100, 100, false)
	assert.True(t, ok)
	assert.Equal(t, dims, got)
}

func TestFitsContainer_Oversized(t *testing.T) {
	dims := model.Dimensions{W: 500, L: 500, H: 500}
	assert.False(t, FitsContainer(dims, model.Carton, 100, 100, 100))
}
