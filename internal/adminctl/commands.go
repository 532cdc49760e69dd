package adminctl

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/mverner/teambook/internal/models"
	"github.com/mverner/teambook/internal/services"
)

const usage = `usage:
  adminctl create <email> <firstname> <lastname> <team>
  adminctl validate <userid>
  adminctl archive <userid>
  adminctl genkey <userid>
  adminctl passwd <userid>
  adminctl list <team>
  adminctl list-all
  adminctl tags <team> [term]
  adminctl tag-rename <team> <old> <new>
`

// Run dispatches one subcommand. Output goes to w so tests can capture it.
func (a *App) Run(ctx context.Context, args []string, w io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(w, usage)
		return nil
	}

	switch args[0] {
	case "create":
		return a.runCreate(ctx, args[1:], w)
	case "validate":
		return a.runValidate(ctx, args[1:], w)
	case "archive":
		return a.runArchive(ctx, args[1:], w)
	case "genkey":
		return a.runGenKey(ctx, args[1:], w)
	case "passwd":
		return a.runPasswd(ctx, args[1:], w)
	case "list":
		return a.runList(ctx, args[1:], w)
	case "list-all":
		return a.runListAll(ctx, w)
	case "tags":
		return a.runTags(ctx, args[1:], w)
	case "tag-rename":
		return a.runTagRename(ctx, args[1:], w)
	default:
		fmt.Fprint(w, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric id: %s", arg)
	}
	return id, nil
}

func (a *App) runCreate(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 4 {
		return fmt.Errorf("create needs <email> <firstname> <lastname> <team>")
	}
	team, err := parseID(args[3])
	if err != nil {
		return err
	}

	password, err := GetPassword(w)
	if err != nil {
		return err
	}

	userid, err := a.directory.Create(ctx, services.CreateParams{
		Email:     args[0],
		Password:  password,
		Firstname: args[1],
		Lastname:  args[2],
		Team:      team,
		Group:     models.GroupUser,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "created user %d\n", userid)
	return nil
}

func (a *App) runValidate(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("validate needs <userid>")
	}
	userid, err := parseID(args[0])
	if err != nil {
		return err
	}

	msg, err := a.directory.Validate(ctx, userid)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, msg)
	return nil
}

func (a *App) runArchive(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("archive needs <userid>")
	}
	userid, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.directory.Archive(ctx, userid); err != nil {
		return err
	}

	fmt.Fprintf(w, "archived user %d\n", userid)
	return nil
}

func (a *App) runGenKey(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("genkey needs <userid>")
	}
	userid, err := parseID(args[0])
	if err != nil {
		return err
	}

	key, err := a.directory.GenerateAPIKey(ctx, userid)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, key)
	return nil
}

func (a *App) runPasswd(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("passwd needs <userid>")
	}
	userid, err := parseID(args[0])
	if err != nil {
		return err
	}

	password, err := GetPassword(w)
	if err != nil {
		return err
	}

	if err := a.directory.UpdatePassword(ctx, userid, password); err != nil {
		return err
	}

	fmt.Fprintf(w, "password updated for user %d\n", userid)
	return nil
}

func printUsers(w io.Writer, users []models.UserRecord) {
	for _, u := range users {
		state := "active"
		if !u.Validated {
			state = "pending"
		}
		if u.Archived {
			state = "archived"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\tteam %d\tgroup %d\t%s\n", u.UserID, u.Email, u.Fullname, u.Team, u.Group, state)
	}
}

func (a *App) runList(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("list needs <team>")
	}
	team, err := parseID(args[0])
	if err != nil {
		return err
	}

	users, err := a.directory.ReadAllFromTeam(ctx, team, nil)
	if err != nil {
		return err
	}

	printUsers(w, users)
	return nil
}

func (a *App) runListAll(ctx context.Context, w io.Writer) error {
	users, err := a.directory.ReadAll(ctx)
	if err != nil {
		return err
	}

	printUsers(w, users)
	return nil
}

func (a *App) runTags(ctx context.Context, args []string, w io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("tags needs <team> [term]")
	}
	team, err := parseID(args[0])
	if err != nil {
		return err
	}
	term := ""
	if len(args) == 2 {
		term = args[1]
	}

	texts, err := a.tags.List(ctx, team, term)
	if err != nil {
		return err
	}

	for _, text := range texts {
		fmt.Fprintln(w, text)
	}
	return nil
}

func (a *App) runTagRename(ctx context.Context, args []string, w io.Writer) error {
	if len(args) != 3 {
		return fmt.Errorf("tag-rename needs <team> <old> <new>")
	}
	team, err := parseID(args[0])
	if err != nil {
		return err
	}

	matched, err := a.tags.Rename(ctx, team, args[1], args[2])
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("no tag %q in team %d", args[1], team)
	}

	fmt.Fprintf(w, "renamed %q to %q\n", args[1], args[2])
	return nil
}
