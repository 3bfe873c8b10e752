package user

import (
	"GroceryApp-Backend/domain"
	"GroceryApp-Backend/entities"
	"GroceryApp-Backend/pkg/jwt"
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users     map[string]*entities.User
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*entities.User)}
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID.String()] = user
	return nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ = Describe("UserService", func() {
	var (
		userRepo *mockUserRepository
		service  UserService
		ctx      context.Context
	)

	BeforeEach(func() {
		userRepo = newMockUserRepository()
		service = NewUserService(userRepo, jwt.NewJWTService())
		ctx = context.Background()
	})

	Describe("Register", func() {
		It("creates the user with a hashed password and the user role", func() {
			resp, err := service.Register(ctx, domain.RegisterRequest{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "password123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Email).To(Equal("test@example.com"))

			created := userRepo.users[resp.ID]
			Expect(created).ToNot(BeNil())
			Expect(created.Role).To(Equal(domain.RoleUser))
			Expect(created.Password).ToNot(Equal("password123"))
			Expect(bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123"))).To(Succeed())
		})

		It("rejects an already registered email", func() {
			userRepo.users["existing"] = &entities.User{
				ID:    uuid.New(),
				Email: "test@example.com",
			}

			_, err := service.Register(ctx, domain.RegisterRequest{
				Name:     "Test User",
				Email:    "test@example.com",
				Password: "password123",
			})

			Expect(err).To(MatchError(domain.ErrEmailAlreadyExists))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			Expect(err).ToNot(HaveOccurred())
			id := uuid.New()
			userRepo.users[id.String()] = &entities.User{
				ID:       id,
				Email:    "test@example.com",
				Password: string(hashed),
				Role:     domain.RoleUser,
			}
		})

		It("returns a token for valid credentials", func() {
			resp, err := service.Login(ctx, domain.LoginRequest{
				Email:    "test@example.com",
				Password: "password123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Token).ToNot(BeEmpty())
			Expect(resp.Role).To(Equal(domain.RoleUser))
		})

		It("rejects a wrong password", func() {
			_, err := service.Login(ctx, domain.LoginRequest{
				Email:    "test@example.com",
				Password: "wrong-password",
			})

			Expect(err).To(MatchError(domain.ErrCredentialsInvalid))
		})

		It("rejects an unknown email", func() {
			_, err := service.Login(ctx, domain.LoginRequest{
				Email:    "nobody@example.com",
				Password: "password123",
			})

			Expect(err).To(MatchError(domain.ErrCredentialsInvalid))
		})
	})

	Describe("Me", func() {
		It("returns the profile for an existing user", func() {
			id := uuid.New()
			userRepo.users[id.String()] = &entities.User{
				ID:    id,
				Name:  "Test User",
				Email: "test@example.com",
				Role:  domain.RoleUser,
			}

			resp, err := service.Me(ctx, id.String())

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Name).To(Equal("Test User"))
			Expect(resp.Email).To(Equal("test@example.com"))
		})

		It("returns a not-found error for an unknown id", func() {
			_, err := service.Me(ctx, uuid.NewString())

			Expect(err).To(MatchError(domain.ErrUserNotFound))
		})
	})
})
