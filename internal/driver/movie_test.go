// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package driver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdult_ReadsFlagDirectlyOffRawDocument(t *testing.T) {
	assert.True(t, isAdult(json.RawMessage(`{"id":1,"adult":true}`)))
	assert.False(t, isAdult(json.RawMessage(`{"id":1,"adult":false}`)))
	assert.False(t, isAdult(json.RawMessage(`{"id":1}`)))
}

func TestIsAdult_MalformedDocumentIsNotAdult(t *testing.T) {
	assert.False(t, isAdult(json.RawMessage(`not json`)))
}
