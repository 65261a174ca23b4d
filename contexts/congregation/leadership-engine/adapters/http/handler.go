package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"shepherd/contexts/congregation/leadership-engine/application/commands"
	"shepherd/contexts/congregation/leadership-engine/application/queries"
	"shepherd/contexts/congregation/leadership-engine/domain/entities"
	httptransport "shepherd/contexts/congregation/leadership-engine/transport/http"
)

type Handler struct {
	RoleAdmin   commands.RoleAdminUseCase
	Assignments commands.AssignmentUseCase
	Queries     queries.LeadershipQueryUseCase
	Logger      *slog.Logger
}

func (h Handler) CreateRoleHandler(ctx context.Context, req httptransport.CreateRoleRequest) (httptransport.StatusResponse, error) {
	role, err := h.RoleAdmin.CreateRole(ctx, commands.CreateRoleCommand{
		Name:              req.Name,
		Description:       req.Description,
		MaxAllowed:        req.MaxAllowed,
		MinAge:            req.MinAge,
		MaxAge:            req.MaxAge,
		GenderRequirement: req.GenderRequirement,
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success: true,
		Message: "Role created successfully",
		RoleID:  role.RoleID,
	}, nil
}

func (h Handler) UpdateRoleHandler(ctx context.Context, roleID string, req httptransport.UpdateRoleRequest) (httptransport.StatusResponse, error) {
	_, err := h.RoleAdmin.UpdateRole(ctx, commands.UpdateRoleCommand{
		RoleID:            roleID,
		Name:              req.Name,
		Description:       req.Description,
		MaxAllowed:        req.MaxAllowed,
		MinAge:            req.MinAge,
		MaxAge:            req.MaxAge,
		GenderRequirement: req.GenderRequirement,
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Role updated successfully"}, nil
}

func (h Handler) DeleteRoleHandler(ctx context.Context, roleID string) (httptransport.StatusResponse, error) {
	if err := h.RoleAdmin.DeleteRole(ctx, roleID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Role deleted successfully"}, nil
}

func (h Handler) ListRolesHandler(ctx context.Context) (httptransport.RoleListResponse, error) {
	roles, err := h.Queries.ListRoles(ctx)
	if err != nil {
		return httptransport.RoleListResponse{}, err
	}
	items := make([]httptransport.RoleResponse, 0, len(roles))
	for _, role := range roles {
		items = append(items, mapRole(role))
	}
	return httptransport.RoleListResponse{Items: items}, nil
}

func (h Handler) AssignRoleHandler(ctx context.Context, req httptransport.AssignRoleRequest) (httptransport.StatusResponse, error) {
	assignment, err := h.Assignments.Assign(ctx, commands.AssignRoleCommand{
		RoleID:     req.RoleID,
		MemberID:   req.MemberID,
		AssignedBy: req.AssignedBy,
	})
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		Success:      true,
		Message:      "Role assigned successfully",
		AssignmentID: assignment.AssignmentID,
	}, nil
}

func (h Handler) RemoveAssignmentHandler(ctx context.Context, assignmentID string) (httptransport.StatusResponse, error) {
	if err := h.Assignments.Remove(ctx, assignmentID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true, Message: "Role removed successfully"}, nil
}

func (h Handler) EligibleMembersHandler(ctx context.Context, roleID string) (httptransport.EligibleMembersResponse, error) {
	members, err := h.Queries.EligibleMembers(ctx, roleID)
	if err != nil {
		return httptransport.EligibleMembersResponse{}, err
	}
	now := time.Now().UTC()
	items := make([]httptransport.EligibleMemberResponse, 0, len(members))
	for _, member := range members {
		items = append(items, httptransport.EligibleMemberResponse{
			MemberID:    member.MemberID,
			FirstName:   member.FirstName,
			LastName:    member.LastName,
			Gender:      member.Gender,
			DateOfBirth: member.DateOfBirth.Format("2006-01-02"),
			Age:         member.AgeAt(now),
			Address:     member.Address,
			PhoneNumber: member.PhoneNumber,
		})
	}
	return httptransport.EligibleMembersResponse{RoleID: roleID, Items: items}, nil
}

func (h Handler) CurrentLeadershipHandler(ctx context.Context) (httptransport.CurrentLeadershipResponse, error) {
	leadership, err := h.Queries.CurrentLeadership(ctx)
	if err != nil {
		return httptransport.CurrentLeadershipResponse{}, err
	}
	now := time.Now().UTC()
	items := make([]httptransport.RoleLeadershipItem, 0, len(leadership))
	for _, entry := range leadership {
		assignments := make([]httptransport.AssignmentItem, 0, len(entry.Assignments))
		for _, holder := range entry.Assignments {
			assignments = append(assignments, httptransport.AssignmentItem{
				AssignmentID: holder.AssignmentID,
				MemberID:     holder.Member.MemberID,
				FirstName:    holder.Member.FirstName,
				LastName:     holder.Member.LastName,
				Gender:       holder.Member.Gender,
				Age:          holder.Member.AgeAt(now),
				AssignedAt:   holder.AssignedAt,
				AssignedBy:   holder.AssignedBy,
			})
		}
		items = append(items, httptransport.RoleLeadershipItem{
			RoleID:      entry.Role.RoleID,
			Name:        entry.Role.Name,
			Description: entry.Role.Description,
			MaxAllowed:  entry.Role.Policy.MaxAllowed,
			Assignments: assignments,
		})
	}
	return httptransport.CurrentLeadershipResponse{Items: items}, nil
}

func (h Handler) LeadershipStatsHandler(ctx context.Context) (httptransport.LeadershipStatsResponse, error) {
	stats, err := h.Queries.Stats(ctx)
	if err != nil {
		return httptransport.LeadershipStatsResponse{}, err
	}
	items := make([]httptransport.LeadershipStatItem, 0, len(stats))
	for _, stat := range stats {
		items = append(items, httptransport.LeadershipStatItem{
			RoleName:     stat.RoleName,
			MaxAllowed:   stat.MaxAllowed,
			CurrentCount: stat.CurrentCount,
		})
	}
	return httptransport.LeadershipStatsResponse{Items: items}, nil
}

func mapRole(role entities.Role) httptransport.RoleResponse {
	return httptransport.RoleResponse{
		RoleID:            role.RoleID,
		Name:              role.Name,
		Description:       role.Description,
		MaxAllowed:        role.Policy.MaxAllowed,
		MinAge:            role.Policy.MinAge,
		MaxAge:            role.Policy.MaxAge,
		GenderRequirement: string(role.Policy.GenderRequirement),
		CreatedAt:         role.CreatedAt,
		UpdatedAt:         role.UpdatedAt,
	}
}
