package group

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/group"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	grouprepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/group"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a group repository bound to the provided *gorm.DB.
func New(db *gorm.DB) grouprepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create dto.GroupCreate,
) error {
	g := &FinancialGroup{
		ID:          create.ID,
		Name:        create.Name,
		Description: create.Description,
		Type:        string(create.Type),
		CreatedByID: create.CreatedByID,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(g).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.GroupUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&FinancialGroup{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.GroupRead, error) {
	var g FinancialGroup
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	read := mapModelToDTO(&g)

	var count int64
	if err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Where("financial_group_id = ?", id).Count(&count).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	read.MemberCount = int(count)
	return read, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	if err := r.db.WithContext(ctx).
		Where("financial_group_id = ?", id).
		Delete(&FinancialGroupMember{}).Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&FinancialGroup{}, "id = ?", id).Error,
	)
}

func (r *repository) ListCollaborativeForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.GroupRead, error) {
	var groups []FinancialGroup
	err := r.db.WithContext(ctx).
		Joins("JOIN financial_group_members m ON m.financial_group_id = financial_groups.id").
		Where("m.user_id = ? AND financial_groups.type = ?", userID, string(group.TypeCollaborative)).
		Order("financial_groups.created_at").
		Find(&groups).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return r.attachMemberCounts(ctx, groups)
}

func (r *repository) GetPersonalForUser(
	ctx context.Context,
	userID uuid.UUID,
) (*dto.GroupRead, error) {
	var g FinancialGroup
	err := r.db.WithContext(ctx).
		Where("created_by_id = ? AND type = ?", userID, string(group.TypePersonal)).
		First(&g).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&g), nil
}

// AccessibleGroupIDs unions membership rows with created groups. Membership
// wins on overlap; the map de-duplicates either way.
func (r *repository) AccessibleGroupIDs(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	var memberIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Where("user_id = ?", userID).
		Pluck("financial_group_id", &memberIDs).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	var createdIDs []uuid.UUID
	err = r.db.WithContext(ctx).Model(&FinancialGroup{}).
		Where("created_by_id = ?", userID).
		Pluck("id", &createdIDs).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	seen := make(map[uuid.UUID]struct{}, len(memberIDs)+len(createdIDs))
	ids := make([]uuid.UUID, 0, len(memberIDs)+len(createdIDs))
	for _, id := range memberIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range createdIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *repository) AccessibleGroups(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.GroupRead, error) {
	ids, err := r.AccessibleGroupIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*dto.GroupRead{}, nil
	}
	var groups []FinancialGroup
	err = r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at").
		Find(&groups).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return r.attachMemberCounts(ctx, groups)
}

func (r *repository) AddMember(
	ctx context.Context,
	groupID, userID uuid.UUID,
	isOwner bool,
) error {
	m := &FinancialGroupMember{
		UserID:           userID,
		FinancialGroupID: groupID,
		IsOwner:          isOwner,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(m).Error,
	)
}

func (r *repository) RemoveMember(
	ctx context.Context,
	groupID, userID uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).
			Where("financial_group_id = ? AND user_id = ?", groupID, userID).
			Delete(&FinancialGroupMember{}).Error,
	)
}

func (r *repository) IsMember(
	ctx context.Context,
	groupID, userID uuid.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Where("financial_group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) IsOwner(
	ctx context.Context,
	groupID, userID uuid.UUID,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Where("financial_group_id = ? AND user_id = ? AND is_owner = ?", groupID, userID, true).
		Count(&count).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) ListMembers(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*dto.GroupMemberRead, error) {
	var rows []struct {
		FinancialGroupMember
		Username string
		Email    string
	}
	err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Select("financial_group_members.*, u.username, u.email").
		Joins("JOIN users u ON u.id = financial_group_members.user_id").
		Where("financial_group_members.financial_group_id = ?", groupID).
		Order("financial_group_members.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	members := make([]*dto.GroupMemberRead, 0, len(rows))
	for _, row := range rows {
		members = append(members, &dto.GroupMemberRead{
			UserID:   row.UserID,
			GroupID:  row.FinancialGroupID,
			Username: row.Username,
			Email:    row.Email,
			IsOwner:  row.IsOwner,
			JoinedAt: row.CreatedAt,
		})
	}
	return members, nil
}

func (r *repository) attachMemberCounts(
	ctx context.Context,
	groups []FinancialGroup,
) ([]*dto.GroupRead, error) {
	reads := make([]*dto.GroupRead, 0, len(groups))
	if len(groups) == 0 {
		return reads, nil
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}

	var counts []struct {
		FinancialGroupID uuid.UUID
		Count            int
	}
	err := r.db.WithContext(ctx).Model(&FinancialGroupMember{}).
		Select("financial_group_id, COUNT(*) as count").
		Where("financial_group_id IN ?", ids).
		Group("financial_group_id").
		Scan(&counts).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	countByID := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		countByID[c.FinancialGroupID] = c.Count
	}
	for i := range groups {
		read := mapModelToDTO(&groups[i])
		read.MemberCount = countByID[groups[i].ID]
		reads = append(reads, read)
	}
	return reads, nil
}

func mapModelToDTO(g *FinancialGroup) *dto.GroupRead {
	return &dto.GroupRead{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Type:        group.Type(g.Type),
		CreatedByID: g.CreatedByID,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

var _ grouprepo.Repository = (*repository)(nil)
