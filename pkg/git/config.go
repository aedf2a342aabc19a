package git

import (
	"context"
	"strings"

	"github.com/zdunecki/rtw/pkg/shell"
)

// UserName returns git's configured user.name, or "" when git is missing
// or the key is unset.
func UserName(ctx context.Context, r shell.Runner) string {
	return configValue(ctx, r, "name")
}

// UserEmail returns git's configured user.email, or "".
func UserEmail(ctx context.Context, r shell.Runner) string {
	return configValue(ctx, r, "email")
}

func configValue(ctx context.Context, r shell.Runner, key string) string {
	gitPath, err := r.LookPath("git")
	if err != nil {
		return ""
	}
	out, err := r.Output(ctx, shell.Cmd(gitPath, "config", "user."+key))
	if err != nil {
		return ""
	}
	return strings.TrimRight(out, " \t\r\n")
}
