package handlers

import "time"

// ProjectView is the public representation of a project.
type ProjectView struct {
	Slug        string    `doc:"URL slug"                 example:"portfolio-api" json:"slug"`
	Title       string    `doc:"Project title"            json:"title"`
	Summary     string    `doc:"One-line summary"         json:"summary"`
	Description string    `doc:"Full description"         json:"description,omitempty"`
	RepoURL     string    `doc:"Source repository URL"    json:"repoUrl,omitempty"`
	LiveURL     string    `doc:"Live deployment URL"      json:"liveUrl,omitempty"`
	Tags        []string  `doc:"Technology tags"          json:"tags,omitempty"`
	Featured    bool      `doc:"Shown on the front page"  json:"featured"`
	CreatedAt   time.Time `doc:"Creation time"            json:"createdAt"`
}

// ListProjectsResponse is the response for listing projects.
type ListProjectsResponse struct {
	Body struct {
		Projects []ProjectView `json:"projects"`
	}
}

// GetProjectRequest is the request for fetching one project.
type GetProjectRequest struct {
	Slug string `doc:"Project slug" example:"portfolio-api" path:"slug"`
}

// GetProjectResponse is the response for fetching one project.
type GetProjectResponse struct {
	Body ProjectView
}

// SaveProjectRequest is the admin request for creating or updating a project.
type SaveProjectRequest struct {
	Body struct {
		Slug        string   `doc:"URL slug"                json:"slug"        minLength:"1"`
		Title       string   `doc:"Project title"           json:"title"       minLength:"1"`
		Summary     string   `doc:"One-line summary"        json:"summary"`
		Description string   `doc:"Full description"        json:"description"`
		RepoURL     string   `doc:"Source repository URL"   json:"repoUrl,omitempty"`
		LiveURL     string   `doc:"Live deployment URL"     json:"liveUrl,omitempty"`
		Tags        []string `doc:"Technology tags"         json:"tags,omitempty"`
		Featured    bool     `doc:"Shown on the front page" json:"featured,omitempty"`
	}
}

// SaveProjectResponse is the response for a saved project.
type SaveProjectResponse struct {
	Body ProjectView
}

// PostView is the public representation of a blog post.
type PostView struct {
	Slug        string    `doc:"URL slug"          json:"slug"`
	Title       string    `doc:"Post title"        json:"title"`
	Excerpt     string    `doc:"Short excerpt"     json:"excerpt,omitempty"`
	Content     string    `doc:"Full content"      json:"content,omitempty"`
	PublishedAt time.Time `doc:"Publication time"  json:"publishedAt"`
}

// ListPostsResponse is the response for listing published posts.
type ListPostsResponse struct {
	Body struct {
		Posts []PostView `json:"posts"`
	}
}

// GetPostRequest is the request for fetching one post.
type GetPostRequest struct {
	Slug string `doc:"Post slug" path:"slug"`
}

// GetPostResponse is the response for fetching one post.
type GetPostResponse struct {
	Body PostView
}

// SavePostRequest is the admin request for creating or updating a post.
type SavePostRequest struct {
	Body struct {
		Slug      string `doc:"URL slug"                     json:"slug"      minLength:"1"`
		Title     string `doc:"Post title"                   json:"title"     minLength:"1"`
		Excerpt   string `doc:"Short excerpt"                json:"excerpt,omitempty"`
		Content   string `doc:"Full content"                 json:"content"`
		Published bool   `doc:"Whether the post is public"   json:"published,omitempty"`
	}
}

// SavePostResponse is the response for a saved post.
type SavePostResponse struct {
	Body PostView
}

// ContactRequest is the contact form submission.
type ContactRequest struct {
	Body struct {
		Name    string `doc:"Sender name"    json:"name"    minLength:"1" maxLength:"200"`
		Email   string `doc:"Sender email"   format:"email" json:"email"`
		Subject string `doc:"Subject line"   json:"subject" maxLength:"200"`
		Message string `doc:"Message body"   json:"message" minLength:"1" maxLength:"5000"`
	}
}

// ContactResponse acknowledges a stored contact message.
type ContactResponse struct {
	Status int
	Body   struct {
		ID     string `doc:"Message ID" json:"id"`
		Status string `doc:"Always 'received'" json:"status"`
	}
}

// ListMessagesResponse is the admin response for listing contact messages.
type ListMessagesResponse struct {
	Body struct {
		Messages []ContactMessageView `json:"messages"`
	}
}

// ContactMessageView is the admin representation of a contact message.
type ContactMessageView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject,omitempty"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// SubscribeRequest is the newsletter subscription request.
type SubscribeRequest struct {
	Body struct {
		Email string `doc:"Subscriber email" format:"email" json:"email"`
	}
}

// SubscribeResponse acknowledges a new subscription.
type SubscribeResponse struct {
	Status int
	Body   struct {
		Status string `doc:"Always 'subscribed'" json:"status"`
	}
}

// UnsubscribeRequest is the unsubscribe link request.
type UnsubscribeRequest struct {
	Token string `doc:"Unsubscribe token" path:"token"`
}

// UnsubscribeResponse acknowledges an unsubscription.
type UnsubscribeResponse struct {
	Body struct {
		Status string `doc:"Always 'unsubscribed'" json:"status"`
	}
}

// SendIssueRequest is the admin request to queue a newsletter issue.
type SendIssueRequest struct {
	Body struct {
		Subject string `doc:"Issue subject" json:"subject" minLength:"1" maxLength:"200"`
		Content string `doc:"Issue content" json:"content" minLength:"1"`
	}
}

// SendIssueResponse acknowledges a queued issue.
type SendIssueResponse struct {
	Status int
	Body   struct {
		IssueID string `doc:"Queued issue ID" json:"issueId"`
		Status  string `doc:"Always 'queued'" json:"status"`
	}
}

// SubscriberView is the admin representation of a subscriber.
type SubscriberView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// ListSubscribersResponse is the admin response for listing subscribers.
type ListSubscribersResponse struct {
	Body struct {
		Subscribers []SubscriberView `json:"subscribers"`
	}
}
