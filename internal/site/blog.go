package site

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
)

// BlogPost is a published blog entry.
type BlogPost struct {
	Slug   string    `json:"slug"`
	Title  string    `json:"title"`
	Author string    `json:"author,omitempty"`
	Date   time.Time `json:"date"`
}

// BlogPostRepository lists blog posts, newest first.
type BlogPostRepository interface {
	FindAll(ctx context.Context) ([]BlogPost, error)
}

// FileBlogPostRepository reads posts from front matter of the files in Dir.
// An empty or missing directory yields no posts.
type FileBlogPostRepository struct {
	Dir string
}

func (r FileBlogPostRepository) FindAll(ctx context.Context) ([]BlogPost, error) {
	if r.Dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.FileSystemError("cannot list blog posts").WithCause(err).WithContext("path", r.Dir).Build()
	}

	var posts []BlogPost
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		post, ok, err := readPost(filepath.Join(r.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if ok {
			posts = append(posts, post)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

func readPost(path string) (BlogPost, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlogPost{}, false, errors.FileSystemError("cannot read blog post").WithCause(err).WithContext("path", path).Build()
	}
	doc, err := frontmatter.Split(data)
	if err != nil {
		return BlogPost{}, false, errors.ValidationError("invalid blog post front matter").WithCause(err).WithContext("path", path).Build()
	}
	if !doc.HasFrontMatter {
		return BlogPost{}, false, nil
	}
	fields, err := doc.Fields()
	if err != nil {
		return BlogPost{}, false, errors.ValidationError("invalid blog post front matter").WithCause(err).WithContext("path", path).Build()
	}

	base := filepath.Base(path)
	post := BlogPost{Slug: strings.TrimSuffix(base, filepath.Ext(base))}
	post.Title, _ = fields["title"].(string)
	post.Author, _ = fields["author"].(string)
	switch d := fields["date"].(type) {
	case time.Time:
		post.Date = d
	case string:
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			post.Date = t
		}
	}
	return post, true, nil
}
