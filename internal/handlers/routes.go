package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portfolio-go/internal/ratelimit"
)

// RegisterRoutes registers all portfolio routes with per-endpoint rate
// limit configuration. The default is a per-client budget; endpoints can
// opt into a fixed shared action budget or out of limiting entirely.
func RegisterRoutes(
	api huma.API,
	projects *ProjectsHandler,
	posts *PostsHandler,
	contact *ContactHandler,
	newsletter *NewsletterHandler,
) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
		Description: "Lists all portfolio projects, featured first.",
		Tags:        []string{"Projects"},
	}, projects.ListProjects)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/projects/{slug}",
		Summary: "Get project",
		Tags:    []string{"Projects"},
	}, projects.GetProject)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/posts",
		Summary: "List published posts",
		Tags:    []string{"Blog"},
	}, posts.ListPosts)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/posts/{slug}",
		Summary: "Get published post",
		Tags:    []string{"Blog"},
	}, posts.GetPost)

	// The contact form is the prime abuse target; it keeps the default
	// per-client budget.
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/contact",
		Summary:       "Submit contact form",
		DefaultStatus: http.StatusAccepted,
		Tags:          []string{"Contact"},
	}, contact.SubmitContact)

	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/newsletter/subscribe",
		Summary:       "Subscribe to the newsletter",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Newsletter"},
	}, newsletter.Subscribe)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/newsletter/unsubscribe/{token}",
		Summary: "Unsubscribe from the newsletter",
		Tags:    []string{"Newsletter"},
	}, newsletter.Unsubscribe)

	// Sending an issue draws from one shared budget regardless of the
	// caller, so repeated admin clicks can't trigger duplicate sends.
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/admin/newsletter/send",
		Summary:       "Queue a newsletter issue",
		DefaultStatus: http.StatusAccepted,
		Tags:          []string{"Admin"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Action: "newsletter-send",
			},
		},
	}, newsletter.SendIssue)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/admin/messages",
		Summary: "List contact messages",
		Tags:    []string{"Admin"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, contact.ListMessages)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/admin/subscribers",
		Summary: "List subscribers",
		Tags:    []string{"Admin"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, newsletter.ListSubscribers)

	huma.Register(api, huma.Operation{
		Method:  http.MethodPost,
		Path:    "/admin/projects",
		Summary: "Create or update a project",
		Tags:    []string{"Admin"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, projects.SaveProject)

	huma.Register(api, huma.Operation{
		Method:  http.MethodPost,
		Path:    "/admin/posts",
		Summary: "Create or update a post",
		Tags:    []string{"Admin"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, posts.SavePost)
}
