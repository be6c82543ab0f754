package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconNames(t *testing.T) {
	seen := make(map[string]Icon)
	for i := range iconCount {
		name := i.Name()
		assert.NotEmpty(t, name, "icon %d", i)
		if prev, dup := seen[name]; dup {
			t.Errorf("%q used by %d and %d", name, prev, i)
		}
		seen[name] = i

		got, ok := ParseIcon(name)
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}

	assert.Equal(t, "default", Default.String())
	assert.Equal(t, []string{"pointer", "hand2", "hand1", "hand", "pointing_hand"}, Pointer.Names())
	assert.Empty(t, ZoomIn.AltNames())

	_, ok := ParseIcon("left_ptr")
	assert.False(t, ok, "legacy names are not icon names")
	assert.Equal(t, "default", Icon(200).Name())
}
