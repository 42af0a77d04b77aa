/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package failure

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := New(Binding, "contract missing")
	require.Equal(t, Binding, KindOf(err))
	require.True(t, Is(err, Binding))
	require.False(t, Is(err, Connection))

	wrapped := errors.WithMessage(err, "outer")
	require.Equal(t, Binding, KindOf(wrapped))

	require.Equal(t, Unknown, KindOf(errors.New("plain")))
	require.Equal(t, Unknown, KindOf(nil))
	require.False(t, Is(nil, Unknown))
}

func TestOutermostKindWins(t *testing.T) {
	inner := New(Connection, "dial failed")
	outer := Wrap(inner, Submission, "submit")
	require.Equal(t, Submission, KindOf(outer))
	require.Equal(t, "submit: dial failed", outer.Error())
	require.True(t, errors.Is(outer, inner))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil, Connection, "x"))
	require.NoError(t, Wrapf(nil, Connection, "x %d", 1))
}

func TestFormat(t *testing.T) {
	err := Errorf(Submission, "endorsement of %s rejected", "Bid")
	require.Equal(t, "endorsement of Bid rejected", fmt.Sprintf("%v", err))
	require.Equal(t, `"endorsement of Bid rejected"`, fmt.Sprintf("%q", err))

	verbose := fmt.Sprintf("%+v", err)
	require.Contains(t, verbose, "SubmissionError: endorsement of Bid rejected")
	require.Contains(t, verbose, "failure_test.go")
}

func TestIsUsage(t *testing.T) {
	require.True(t, IsUsage(New(Argument, "missing")))
	require.True(t, IsUsage(New(UnknownOrganization, "org3")))
	require.False(t, IsUsage(New(CredentialNotFound, "nobody")))
	require.False(t, IsUsage(errors.New("plain")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"success", nil, 0},
		{"argument", New(Argument, "x"), 1},
		{"unknown organization", New(UnknownOrganization, "x"), 1},
		{"credential", New(CredentialNotFound, "x"), 2},
		{"configuration", New(Configuration, "x"), 2},
		{"connection", New(Connection, "x"), 3},
		{"binding", New(Binding, "x"), 3},
		{"submission", New(Submission, "x"), 4},
		{"unclassified", errors.New("x"), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "CredentialNotFoundError", CredentialNotFound.String())
	require.Equal(t, "Kind(42)", Kind(42).String())
}
