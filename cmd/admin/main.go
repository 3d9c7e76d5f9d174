// admin - административные команды для PostgreSQL хранилища.
// Группы создаются только здесь или из seed-файла, через сайт их создать нельзя.
package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/seed"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/urfave/cli/v2"
)

// stores - хранилища, с которыми работают команды
type stores struct {
	users  user.UserStorage
	groups group.GroupStorage
}

// connectFunc открывает хранилища и возвращает функцию закрытия
type connectFunc func() (*stores, func() error, error)

func connectPostgres() (*stores, func() error, error) {
	config.LoadEnv()
	if err := postgres.InitDB(config.LoadDB()); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Migrate(); err != nil {
		postgres.CloseDB()
		return nil, nil, err
	}
	return &stores{
		users:  postgres.NewUserPostgresStorage(),
		groups: postgres.NewGroupPostgresStorage(),
	}, postgres.CloseDB, nil
}

func main() {
	if err := newApp(connectPostgres).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(connect connectFunc) *cli.App {
	var s *stores
	closeStores := func() error { return nil }

	return &cli.App{
		Name:  "admin",
		Usage: "manage yatube groups and users",
		Before: func(c *cli.Context) error {
			opened, closeFn, err := connect()
			if err != nil {
				return err
			}
			s, closeStores = opened, closeFn
			return nil
		},
		After: func(c *cli.Context) error {
			return closeStores()
		},
		Commands: []*cli.Command{
			{
				Name:  "group",
				Usage: "manage groups",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "create a group",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Required: true},
							&cli.StringFlag{Name: "slug", Required: true, Usage: "latin letters, numbers, _ and -"},
							&cli.StringFlag{Name: "description"},
						},
						Action: func(c *cli.Context) error { return createGroup(c, s) },
					},
					{
						Name:   "list",
						Usage:  "list all groups",
						Action: func(c *cli.Context) error { return listGroups(c, s) },
					},
					{
						Name:  "seed",
						Usage: "create groups from a YAML file, existing slugs are skipped",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "file", Required: true, EnvVars: []string{"SEED_FILE"}},
						},
						Action: func(c *cli.Context) error { return seedGroups(c, s) },
					},
				},
			},
			{
				Name:  "user",
				Usage: "manage users",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "register a user",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "username", Required: true},
							&cli.StringFlag{Name: "email"},
							&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_USER_PASSWORD"}},
						},
						Action: func(c *cli.Context) error { return createUser(c, s) },
					},
				},
			},
		},
	}
}

func createGroup(c *cli.Context, s *stores) error {
	slug := c.String("slug")
	if err := group.ValidateSlug(slug); err != nil {
		return fmt.Errorf("slug %q: %w", slug, err)
	}

	g, err := s.groups.CreateGroup(c.String("title"), slug, c.String("description"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "group %q created: /group/%s/\n", g.Title, g.Slug)
	return nil
}

func listGroups(c *cli.Context, s *stores) error {
	groups, total, err := s.groups.ListGroups(-1, 0)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "total: %d\n", total)
	return nil
}

func seedGroups(c *cli.Context, s *stores) error {
	data, err := seed.Load(c.String("file"))
	if err != nil {
		return err
	}
	created, err := seed.Apply(s.groups, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "groups created: %d\n", created)
	return nil
}

func createUser(c *cli.Context, s *stores) error {
	username := c.String("username")
	if err := user.ValidateUsername(username); err != nil {
		return fmt.Errorf("username %q: %w", username, err)
	}

	u, err := s.users.RegisterUser(username, c.String("email"), c.String("password"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "user %s created with id %d\n", u.Username, u.ID)
	return nil
}
