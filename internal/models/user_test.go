package models

import (
	"testing"

	"promolink/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestHasSocialLink(t *testing.T) {
	var p PromoterProfile
	assert.False(t, p.HasSocialLink())

	link := "https://tiktok.com/@creator"
	p.TikTokLink = &link
	assert.True(t, p.HasSocialLink())
}

func TestUserRolePredicates(t *testing.T) {
	u := User{Role: domain.RolePromoter}
	assert.True(t, u.IsPromoter())
	assert.False(t, u.IsBusiness())

	u.Role = domain.RoleBusiness
	assert.True(t, u.IsBusiness())
}
