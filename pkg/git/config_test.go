package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zdunecki/rtw/pkg/shell/shelltest"
)

func TestUserNameAndEmail(t *testing.T) {
	fake := shelltest.New().
		On("/usr/bin/git config user.name", "Jane Roboticist\n", nil).
		On("/usr/bin/git config user.email", "jane@example.com\n", nil)

	require.Equal(t, "Jane Roboticist", UserName(context.Background(), fake))
	require.Equal(t, "jane@example.com", UserEmail(context.Background(), fake))
}

func TestUserNameWithoutGit(t *testing.T) {
	fake := shelltest.New()
	fake.Missing["git"] = true

	require.Empty(t, UserName(context.Background(), fake))
	require.Empty(t, fake.Calls)
}

func TestUserEmailUnset(t *testing.T) {
	fake := shelltest.New().On("/usr/bin/git config user.email", "", errors.New("exit status 1"))

	require.Empty(t, UserEmail(context.Background(), fake))
}
