package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/testutil"
	"gorm.io/gorm"
)

// ProjectRepositoryTestSuite exercises GormProjectRepository against sqlite
type ProjectRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  ProjectRepository
	alice models.Resource
	bob   models.Resource
	carol models.Resource
}

func (s *ProjectRepositoryTestSuite) SetupTest() {
	s.db = testutil.OpenDB(s.T())
	s.repo = NewProjectRepository(s.db)

	s.alice = testutil.CreateResource(s.T(), s.db, "Alice", 2025, 5, 20)
	s.bob = testutil.CreateResource(s.T(), s.db, "Bob", 2025, 5, 18)
	s.carol = testutil.CreateResource(s.T(), s.db, "Carol", 2025, 5, 21)
}

func (s *ProjectRepositoryTestSuite) newProject(name string, members ...models.Resource) *models.Project {
	return &models.Project{
		Name:      name,
		Type:      models.ProjectTypeBillable,
		Year:      2025,
		Month:     5,
		Resources: members,
		IsActive:  true,
	}
}

func (s *ProjectRepositoryTestSuite) TestCreateWithRelations() {
	project := s.newProject("Apollo", s.bob, s.alice)
	project.AssignedResourceID = &s.alice.ID
	project.PointOfContactID = &s.carol.ID
	project.BillableDays = testutil.Days(10)
	s.Require().NoError(s.repo.Create(project))

	found, err := s.repo.FindActiveByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Resources, 2)
	s.Equal("Alice", found.Resources[0].Name)
	s.Equal("Bob", found.Resources[1].Name)
	s.Require().NotNil(found.AssignedResource)
	s.Equal("Alice", found.AssignedResource.Name)
	s.Require().NotNil(found.PointOfContact)
	s.Equal("Carol", found.PointOfContact.Name)
	s.True(found.BillableHours.Equal(testutil.Days(80)), "got %s", found.BillableHours)
}

func (s *ProjectRepositoryTestSuite) TestUpdateReplacesAndClearsMembers() {
	project := s.newProject("Apollo", s.alice, s.bob)
	s.Require().NoError(s.repo.Create(project))

	project.Resources = []models.Resource{s.carol}
	s.Require().NoError(s.repo.Update(project))

	found, err := s.repo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Resources, 1)
	s.Equal("Carol", found.Resources[0].Name)

	found.Resources = nil
	s.Require().NoError(s.repo.Update(found))

	found, err = s.repo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Empty(found.Resources)
}

func (s *ProjectRepositoryTestSuite) TestRelationsSurviveResourceSoftDelete() {
	project := s.newProject("Apollo", s.alice)
	project.PointOfContactID = &s.alice.ID
	s.Require().NoError(s.repo.Create(project))

	testutil.Deactivate(s.T(), s.db, &models.Resource{}, s.alice.ID)

	found, err := s.repo.FindActiveByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Resources, 1)
	s.Require().NotNil(found.PointOfContact)
	s.False(found.PointOfContact.IsActive)
}

func (s *ProjectRepositoryTestSuite) TestSoftDelete() {
	project := s.newProject("Apollo")
	s.Require().NoError(s.repo.Create(project))
	s.Require().NoError(s.repo.SoftDelete(project.ID))

	_, err := s.repo.FindActiveByID(project.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	found, err := s.repo.FindByID(project.ID)
	s.Require().NoError(err)
	s.False(found.IsActive)

	s.ErrorIs(s.repo.SoftDelete(999), ErrNoRowsAffected)
}

func (s *ProjectRepositoryTestSuite) TestListActiveByRole() {
	apollo := s.newProject("Apollo", s.alice, s.bob)
	apollo.PointOfContactID = &s.alice.ID
	s.Require().NoError(s.repo.Create(apollo))

	zeus := s.newProject("Zeus", s.alice)
	zeus.AssignedResourceID = &s.alice.ID
	s.Require().NoError(s.repo.Create(zeus))

	hermes := s.newProject("Hermes", s.alice)
	s.Require().NoError(s.repo.Create(hermes))
	s.Require().NoError(s.repo.SoftDelete(hermes.ID))

	poc, err := s.repo.ListActiveByRole(s.alice.ID, RolePOC)
	s.Require().NoError(err)
	s.Require().Len(poc, 1)
	s.Equal("Apollo", poc[0].Name)

	responsible, err := s.repo.ListActiveByRole(s.alice.ID, RoleResponsible)
	s.Require().NoError(err)
	s.Require().Len(responsible, 1)
	s.Equal("Zeus", responsible[0].Name)

	members, err := s.repo.ListActiveByRole(s.alice.ID, RoleMember)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal("Apollo", members[0].Name)
	s.Equal("Zeus", members[1].Name)

	_, err = s.repo.ListActiveByRole(s.alice.ID, ProjectRole("owner"))
	s.Error(err)
}

func (s *ProjectRepositoryTestSuite) TestAddMemberIsIdempotent() {
	project := s.newProject("Apollo")
	s.Require().NoError(s.repo.Create(project))

	s.Require().NoError(s.repo.AddMember(project.ID, s.bob.ID))
	s.Require().NoError(s.repo.AddMember(project.ID, s.bob.ID))

	found, err := s.repo.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Resources, 1)
	s.Equal("Bob", found.Resources[0].Name)
}

func (s *ProjectRepositoryTestSuite) TestListActiveFiltersAndPeriods() {
	s.Require().NoError(s.repo.Create(s.newProject("Apollo")))
	june := s.newProject("Zeus")
	june.Month = 6
	s.Require().NoError(s.repo.Create(june))
	older := s.newProject("Hermes")
	older.Year = 2024
	older.Month = 12
	s.Require().NoError(s.repo.Create(older))
	gone := s.newProject("Gone")
	gone.Year = 2019
	s.Require().NoError(s.repo.Create(gone))
	s.Require().NoError(s.repo.SoftDelete(gone.ID))

	projects, total, err := s.repo.ListActive(ProjectFilter{Year: intPtr(2025)})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(projects, 2)
	s.Equal("Apollo", projects[0].Name)
	s.Equal("Zeus", projects[1].Name)

	projects, total, err = s.repo.ListActive(ProjectFilter{Month: intPtr(12)})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Hermes", projects[0].Name)

	years, months, err := s.repo.ActivePeriods()
	s.Require().NoError(err)
	s.Equal([]int{2024, 2025}, years)
	s.Equal([]int{5, 6, 12}, months)
}

func (s *ProjectRepositoryTestSuite) TestFindActiveByName() {
	project := s.newProject("Apollo")
	s.Require().NoError(s.repo.Create(project))

	found, err := s.repo.FindActiveByName("Apollo", may2025)
	s.Require().NoError(err)
	s.Equal(project.ID, found.ID)

	_, err = s.repo.FindActiveByName("Zeus", may2025)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}

func TestProjectRepository_UnknownRoleDoesNotQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.ListActiveByRole(1, ProjectRole("owner"))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
