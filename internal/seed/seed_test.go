package seed

import (
	"context"
	"testing"

	"github.com/baharkarakas/stays-backend/internal/auth"
	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/repository/memory"
)

func TestRunTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	rs := memory.NewRepositories(memory.NewStore())

	first, err := Run(ctx, rs, "host@example.com", "testpass123")
	if err != nil {
		t.Fatal(err)
	}
	if !first.HostCreated || first.ListingsCreated != 3 || first.ListingsExisted != 0 {
		t.Fatalf("first run = %+v", first)
	}

	second, err := Run(ctx, rs, "host@example.com", "testpass123")
	if err != nil {
		t.Fatal(err)
	}
	if second.HostCreated || second.ListingsCreated != 0 || second.ListingsExisted != 3 {
		t.Fatalf("second run = %+v", second)
	}
	if second.Host.ID != first.Host.ID {
		t.Fatal("host was recreated")
	}

	users, _ := rs.Users.List(ctx, repo.Page{Limit: 50})
	if len(users) != 1 || users[0].Role != models.RoleHost {
		t.Fatalf("users = %+v", users)
	}
	ls, _ := rs.Listings.ListByHost(ctx, first.Host.ID, repo.Page{Limit: 50})
	if len(ls) != 3 {
		t.Fatalf("listings = %d", len(ls))
	}
	if err := auth.VerifyPassword("testpass123", users[0].PasswordHash); err != nil {
		t.Fatal("seeded host cannot log in")
	}
}
