// Package seed загружает начальные данные (группы) из YAML-файла.
//
// Группы на сайте не создаются, поэтому для in-memory хранилища это
// единственный способ их получить. Для PostgreSQL тот же файл применяет
// `admin group seed`.
package seed

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"gopkg.in/yaml.v3"
)

type Group struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type Data struct {
	Groups []Group `yaml:"groups"`
}

func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Data, error) {
	var data Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse seed file: %w", err)
	}

	for i, g := range data.Groups {
		if g.Title == "" {
			return nil, fmt.Errorf("group #%d: title is required", i+1)
		}
		if err := group.ValidateSlug(g.Slug); err != nil {
			return nil, fmt.Errorf("group #%d %q: %w", i+1, g.Slug, err)
		}
	}
	return &data, nil
}

// Apply создает группы, которых еще нет. Повторный запуск ничего не меняет.
func Apply(groups group.GroupStorage, data *Data) (int, error) {
	created := 0
	for _, g := range data.Groups {
		_, err := groups.CreateGroup(g.Title, g.Slug, g.Description)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("could not seed group %s: %w", g.Slug, err)
		}
		created++
	}
	log.Printf("seed: %d of %d groups created", created, len(data.Groups))
	return created, nil
}
