package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactsSummary(t *testing.T) {
	assert.Equal(t, "Downloaded 3 of 5 contacts to out/", contactsSummary(3, 5, "out"))
	assert.Equal(t, "Downloaded 0 of 0 contacts to dehancer-output-images/", contactsSummary(0, 0, "dehancer-output-images"))
}
