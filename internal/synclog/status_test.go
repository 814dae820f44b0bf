// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package synclog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition_AllowsLinearChain(t *testing.T) {
	assert.NoError(t, validateTransition(Initialized, FetchingData))
	assert.NoError(t, validateTransition(FetchingData, DataFetched))
	assert.NoError(t, validateTransition(DataFetched, SyncingToDB))
	assert.NoError(t, validateTransition(SyncingToDB, UpdatingPopularity))
	assert.NoError(t, validateTransition(UpdatingPopularity, Success))
}

func TestValidateTransition_AllowsSkippingPopularityUpdate(t *testing.T) {
	assert.NoError(t, validateTransition(SyncingToDB, Success))
}

func TestValidateTransition_AllowsFailedFromAnyNonTerminalState(t *testing.T) {
	for _, s := range []Status{Initialized, FetchingData, DataFetched, SyncingToDB, UpdatingPopularity} {
		assert.NoError(t, validateTransition(s, Failed))
	}
}

func TestValidateTransition_RejectsSkippingAhead(t *testing.T) {
	assert.Error(t, validateTransition(Initialized, DataFetched))
	assert.Error(t, validateTransition(Initialized, Success))
}

func TestValidateTransition_RejectsMovingFromTerminalState(t *testing.T) {
	assert.Error(t, validateTransition(Success, Failed))
	assert.Error(t, validateTransition(Failed, Initialized))
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, Success.Terminal())
	assert.True(t, Failed.Terminal())
	assert.False(t, Initialized.Terminal())
	assert.False(t, SyncingToDB.Terminal())
}
