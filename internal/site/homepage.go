package site

import "context"

// HomepagePosts is the number of blog posts shown on the homepage.
const HomepagePosts = 9

// HomepageController assembles the homepage data slots.
type HomepageController struct {
	BlogPosts BlogPostRepository
	Projects  ProjectRepository
}

func NewHomepageController(posts BlogPostRepository, projects ProjectRepository) *HomepageController {
	return &HomepageController{BlogPosts: posts, Projects: projects}
}

// Index returns the newest blog posts and every project. The source file of
// the page being rendered does not affect the result.
func (c *HomepageController) Index(ctx context.Context, _ string) (ControllerResult, error) {
	posts, err := c.BlogPosts.FindAll(ctx)
	if err != nil {
		return ControllerResult{}, err
	}
	if len(posts) > HomepagePosts {
		posts = posts[:HomepagePosts]
	}
	return NewControllerResult(map[string]any{
		SlotBlogPosts: posts,
		SlotProjects:  c.Projects.FindAll(),
	}), nil
}

// HomepageDataBuilder writes the homepage controller result as a data file.
type HomepageDataBuilder struct {
	Controller *HomepageController
}

func (b HomepageDataBuilder) Name() string { return "homepage" }

func (b HomepageDataBuilder) Build(ctx context.Context) (WebsiteData, error) {
	result, err := b.Controller.Index(ctx, "index.html")
	if err != nil {
		return WebsiteData{}, err
	}
	return WebsiteData{Name: b.Name(), Data: result.Data}, nil
}
