package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopping-advisor-go/internal/processor"
)

func TestOutput(t *testing.T) {
	one := []processor.Result{{URL: "https://www.tokopedia.com/a/1"}}

	assert.Equal(t, one[0], output(one, false))
	assert.Equal(t, one, output(one, true))

	two := append(one, processor.Result{URL: "https://www.tokopedia.com/a/2"})
	assert.Equal(t, two, output(two, false))
}
