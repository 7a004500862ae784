package handlers

import (
	"context"

	"noteshare/internal/models"
	"noteshare/internal/service"
)

// testUser is the authenticated identity most handler tests run as.
func testUser() *models.User { return &models.User{ID: 3, Username: "alice"} }

// ---- Service Mocks ----

type mockAuth struct {
	signUpID     int
	signUpErr    error
	genToken     string
	genTokenErr  error
	parseSubject string
	parseErr     error
	authUser     *models.User
	authErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
	lastAuthToken      string
	revokedTokens      []string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseSubject, m.parseErr
}
func (m *mockAuth) RevokeToken(token string) {
	m.revokedTokens = append(m.revokedTokens, token)
}
func (m *mockAuth) Authenticate(token string) (*models.User, error) {
	m.lastAuthToken = token
	return m.authUser, m.authErr
}

type mockItems struct {
	createItem models.Item
	createErr  error
	listItems  []models.Item
	listErr    error
	getItem    models.Item
	getErr     error
	deleteErr  error

	lastCreateOwner *models.User
	lastCreateInput service.ItemInput
	lastListSkip    int
	lastListLimit   int
	lastGetID       int
	lastDeleteID    int
	lastDeleteOwner int
}

func (m *mockItems) Create(ctx context.Context, owner *models.User, in service.ItemInput) (models.Item, error) {
	m.lastCreateOwner = owner
	m.lastCreateInput = in
	return m.createItem, m.createErr
}
func (m *mockItems) List(ctx context.Context, skip, limit int) ([]models.Item, error) {
	m.lastListSkip = skip
	m.lastListLimit = limit
	return m.listItems, m.listErr
}
func (m *mockItems) Get(ctx context.Context, id int) (models.Item, error) {
	m.lastGetID = id
	return m.getItem, m.getErr
}
func (m *mockItems) Delete(ctx context.Context, id, ownerID int) error {
	m.lastDeleteID = id
	m.lastDeleteOwner = ownerID
	return m.deleteErr
}
