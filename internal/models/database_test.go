package models_test

import (
	"github.com/budget-buddy/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResourceNotFound() {
	var user models.User
	err := suite.db.First(&user, 999).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no user matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDuplicateEmail() {
	suite.createTestUser(models.User{Email: "dup@example.com"})

	err := suite.db.Create(&models.User{Email: "dup@example.com"}).Error
	suite.Assert().ErrorIs(err, models.ErrEmailRegistered)
}

func (suite *TestSuiteStandard) TestClosedDBIsGeneralError() {
	suite.CloseDB()

	var user models.User
	err := suite.db.First(&user, 1).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestCategoryValid() {
	suite.Assert().True(models.CategoryFood.Valid())
	suite.Assert().True(models.CategoryOther.Valid())
	suite.Assert().False(models.Category("groceries").Valid())
	suite.Assert().Len(models.Categories(), 7)
}

func (suite *TestSuiteStandard) TestUserPublic() {
	user := suite.createTestUser(models.User{Name: "Priya", Email: "priya@example.com", Password: "secret-hash"})

	public := user.Public()
	suite.Assert().Equal(user.ID, public.ID)
	suite.Assert().Equal("Priya", public.Name)
	suite.Assert().Equal("priya@example.com", public.Email)
}

func (suite *TestSuiteStandard) TestVerifiedUsers() {
	suite.createTestUser(models.User{IsVerified: true})
	suite.createTestUser(models.User{IsVerified: true})
	suite.createTestUser(models.User{})

	users, err := models.VerifiedUsers(suite.db)
	suite.Require().NoError(err)
	suite.Assert().Len(users, 2)
}
