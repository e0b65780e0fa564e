package mcp

import (
	"github.com/wedgeworks/printdesk/internal/domain/project"
)

type CreateProjectParams struct {
	ID           string                   `json:"id,omitempty"`
	Name         string                   `json:"name,omitempty"`
	CustomerName string                   `json:"customer_name"`
	Shipping     *project.ShippingAddress `json:"shipping,omitempty"`
	Responsible  string                   `json:"responsible,omitempty"`
	Status       string                   `json:"status,omitempty"`
	Quantity     int                      `json:"quantity,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type ListProjectsParams struct {
	Status string `json:"status,omitempty"`
}

type UpdateStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Actor  string `json:"actor"`
}

type AddCommentParams struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type EditCommentParams struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
	Actor string `json:"actor"`
}

type RemoveCommentParams struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Actor string `json:"actor"`
}

type RoleAssignment struct {
	Role   string   `json:"role"`
	People []string `json:"people"`
}

type UpdateProjectParams struct {
	ID           string                   `json:"id"`
	Actor        string                   `json:"actor"`
	Name         *string                  `json:"name,omitempty"`
	Responsible  *string                  `json:"responsible,omitempty"`
	Quantity     *int                     `json:"quantity,omitempty"`
	CustomerName *string                  `json:"customer_name,omitempty"`
	Shipping     *project.ShippingAddress `json:"shipping,omitempty"`
	Role         *RoleAssignment          `json:"role,omitempty"`
}

type ArchiveFileParams struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content_base64"`
}

type GetVersionParams struct {
	Hash string `json:"hash"`
}

type GetChangeLogParams struct {
	ID string `json:"id"`
}

type RebuildIndexParams struct{}

type ListProjectsResponse struct {
	Projects []project.Summary `json:"projects"`
}

type ArchiveFileResponse struct {
	Hash    string `json:"hash"`
	Version int    `json:"version"`
}

type GetVersionResponse struct {
	Hash          string `json:"hash"`
	ContentBase64 string `json:"content_base64"`
}

type GetChangeLogResponse struct {
	Entries []project.ChangeEntry `json:"entries"`
}

type RebuildIndexResponse struct {
	Projects int `json:"projects"`
}
