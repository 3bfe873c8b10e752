package jwt

import (
	"GroceryApp-Backend/domain"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestJwt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Jwt Suite")
}

var _ = Describe("JWTService", func() {
	var service JWTService

	BeforeEach(func() {
		service = &jwtService{secretKey: "test-secret", issuer: "GROCERYAPP"}
	})

	It("round-trips the user id and role through a token", func() {
		token := service.GenerateTokenUser("user-123", domain.RoleUser)
		Expect(token).ToNot(BeEmpty())

		id, role, err := service.GetUserIDByToken(token)
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal("user-123"))
		Expect(role).To(Equal(domain.RoleUser))
	})

	It("rejects a token signed with a different secret", func() {
		other := &jwtService{secretKey: "other-secret", issuer: "GROCERYAPP"}
		token := other.GenerateTokenUser("user-123", domain.RoleUser)

		_, _, err := service.GetUserIDByToken(token)
		Expect(err).To(MatchError(domain.ErrTokenInvalid))
	})

	It("rejects garbage tokens", func() {
		_, _, err := service.GetUserIDByToken("not-a-token")
		Expect(err).To(MatchError(domain.ErrTokenInvalid))
	})
})
