package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers mounted by RegisterRoutes.
type Handlers struct {
	Organization *OrganizationHandler
	Proposal     *ProposalHandler
	Task         *TaskHandler
	Session      *SessionHandler
	Cascade      *CascadeHandler
}

// RegisterRoutes mounts the API on api, normally the /api group.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	session := api.Group("/session")
	{
		session.GET("", h.Session.GetSession)
		session.POST("", h.Session.CreateSession)
		session.DELETE("", h.Session.DeleteSession)
	}

	orgs := api.Group("/organizations")
	{
		orgs.GET("", h.Organization.ListOrganizations)
		orgs.POST("", h.Organization.CreateOrganization)
		orgs.GET("/:id", h.Organization.GetOrganization)
		orgs.PATCH("/:id", h.Organization.UpdateOrganization)
		orgs.DELETE("/:id", h.Organization.DeleteOrganization)
		orgs.GET("/:id/board", h.Organization.GetBoard)
	}

	proposals := api.Group("/proposals")
	{
		proposals.GET("", h.Proposal.ListProposals)
		proposals.POST("", h.Proposal.CreateProposal)
		proposals.GET("/:id", h.Proposal.GetProposal)
		proposals.PATCH("/:id", h.Proposal.UpdateProposal)
		proposals.PATCH("/:id/status", h.Proposal.UpdateProposalStatus)
		proposals.DELETE("/:id", h.Proposal.DeleteProposal)
		proposals.POST("/:id/tasks/suggest", h.Proposal.SuggestTasks)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Task.ListTasks)
		tasks.POST("", h.Task.CreateTask)
		tasks.GET("/:id", h.Task.GetTask)
		tasks.PATCH("/:id", h.Task.UpdateTask)
		tasks.PATCH("/:id/status", h.Task.UpdateTaskStatus)
		tasks.PATCH("/:id/assignee", h.Task.UpdateTaskAssignee)
		tasks.DELETE("/:id", h.Task.DeleteTask)
	}

	cascades := api.Group("/cascades")
	{
		cascades.GET("", h.Cascade.ListCascades)
		cascades.GET("/:id", h.Cascade.GetCascade)
	}
}
