// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package smc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallValue(t *testing.T) {
	require.EqualValues(t, 0x8200ff14, FastCallSIPHWUniqueKey)
	require.EqualValues(t, 0x82000001, CallValue(true, SMC_32, OWNER_SIP, 1))
	require.EqualValues(t, 0x02000001, CallValue(false, SMC_32, OWNER_SIP, 1))
	require.EqualValues(t, 0xc200ff14, CallValue(true, SMC_64, OWNER_SIP, FUNCID_SIP_HW_UNIQUE_KEY))
}

func TestArgsFast(t *testing.T) {
	require.True(t, (&Args{A0: FastCallSIPHWUniqueKey}).Fast())
	require.False(t, (&Args{A0: 0x02000001}).Fast())
}
