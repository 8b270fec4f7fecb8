package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemoDataIsValid(t *testing.T) {
	for _, a := range Animals() {
		assert.NoError(t, a.Validate(), a.ID)
		assert.NotEmpty(t, a.History, a.ID)
	}
	for _, p := range Pastures() {
		assert.NoError(t, p.Validate(), p.ID)
	}
	for _, r := range Finance() {
		assert.NoError(t, r.Validate(), r.ID)
	}
}

func TestSeedsAreFreshCopies(t *testing.T) {
	a := Animals()
	a[0].History[0].ID = "mutated"
	assert.Equal(t, "h4", Animals()[0].History[0].ID)
}
