package memory

import "github.com/passengerdesk/auth-service/internal/core/domain"

// SeedUsers returns the fixture accounts loaded at start-up.
func SeedUsers() []*domain.User {
	return []*domain.User{
		{
			Username:       "passenger1",
			FullName:       "Passenger One",
			Email:          "passenger1@example.com",
			HashedPassword: "fakehashedpass1",
			Role:           domain.RolePassenger,
		},
		{
			Username:       "staff1",
			FullName:       "Staff One",
			Email:          "staff1@example.com",
			HashedPassword: "fakehashedstaff1",
			Role:           domain.RoleStaff,
		},
		{
			Username:       "staff2",
			FullName:       "Staff Two",
			Email:          "staff2@example.com",
			HashedPassword: "fakehashedstaff2",
			Disabled:       true,
			Role:           domain.RoleStaff,
		},
	}
}
