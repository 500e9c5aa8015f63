package models_test

import (
	"strings"

	"github.com/finanzas-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUserTrimWhitespace() {
	name := "  ana "
	note := " Shared household account \t"

	user := suite.createTestUser(models.User{Name: name, Note: note})

	suite.Assert().Equal(strings.TrimSpace(name), user.Name)
	suite.Assert().Equal(strings.TrimSpace(note), user.Note)
}

func (suite *TestSuiteStandard) TestUserNameUnique() {
	suite.createTestUser(models.User{Name: "ana"})

	user := models.User{Name: "ana"}
	err := models.DB.Create(&user).Error
	suite.Assert().ErrorIs(err, models.ErrUserNameNotUnique)
}
