package app

import (
	"fmt"

	identityRepository "github.com/allisson/hubgate/internal/identity/repository"
	identityService "github.com/allisson/hubgate/internal/identity/service"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (identityUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = identityRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = identityRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// GroupRepository returns the group repository instance.
func (c *Container) GroupRepository() (identityUseCase.GroupRepository, error) {
	c.groupRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["groupRepo"] = fmt.Errorf("failed to get database for group repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.groupRepo = identityRepository.NewMySQLGroupRepository(db)
		case "postgres":
			c.groupRepo = identityRepository.NewPostgreSQLGroupRepository(db)
		default:
			c.initErrors["groupRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["groupRepo"]; exists {
		return nil, storedErr
	}
	return c.groupRepo, nil
}

// ServiceRepository returns the service repository instance.
func (c *Container) ServiceRepository() (identityUseCase.ServiceRepository, error) {
	c.serviceRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["serviceRepo"] = fmt.Errorf("failed to get database for service repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.serviceRepo = identityRepository.NewMySQLServiceRepository(db)
		case "postgres":
			c.serviceRepo = identityRepository.NewPostgreSQLServiceRepository(db)
		default:
			c.initErrors["serviceRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["serviceRepo"]; exists {
		return nil, storedErr
	}
	return c.serviceRepo, nil
}

// TokenRepository returns the token repository instance.
func (c *Container) TokenRepository() (identityUseCase.TokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["tokenRepo"] = fmt.Errorf("failed to get database for token repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.tokenRepo = identityRepository.NewMySQLTokenRepository(db)
		case "postgres":
			c.tokenRepo = identityRepository.NewPostgreSQLTokenRepository(db)
		default:
			c.initErrors["tokenRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// RoleRepository returns the role repository instance.
func (c *Container) RoleRepository() (identityUseCase.RoleRepository, error) {
	c.roleRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["roleRepo"] = fmt.Errorf("failed to get database for role repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.roleRepo = identityRepository.NewMySQLRoleRepository(db)
		case "postgres":
			c.roleRepo = identityRepository.NewPostgreSQLRoleRepository(db)
		default:
			c.initErrors["roleRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.roleRepo, nil
}

// TokenService returns the token generation and hashing service.
func (c *Container) TokenService() identityService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = identityService.NewTokenService()
	})
	return c.tokenService
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (identityUseCase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}
		c.userUseCase = identityUseCase.NewUserUseCase(userRepo)
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// GroupUseCase returns the group use case instance.
func (c *Container) GroupUseCase() (identityUseCase.GroupUseCase, error) {
	c.groupUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["groupUseCase"] = fmt.Errorf("failed to get tx manager for group use case: %w", err)
			return
		}
		groupRepo, err := c.GroupRepository()
		if err != nil {
			c.initErrors["groupUseCase"] = fmt.Errorf("failed to get group repository for group use case: %w", err)
			return
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["groupUseCase"] = fmt.Errorf("failed to get user repository for group use case: %w", err)
			return
		}
		c.groupUseCase = identityUseCase.NewGroupUseCase(txManager, groupRepo, userRepo)
	})
	if storedErr, exists := c.initErrors["groupUseCase"]; exists {
		return nil, storedErr
	}
	return c.groupUseCase, nil
}

// ServiceUseCase returns the service use case instance.
func (c *Container) ServiceUseCase() (identityUseCase.ServiceUseCase, error) {
	c.serviceUseCaseInit.Do(func() {
		serviceRepo, err := c.ServiceRepository()
		if err != nil {
			c.initErrors["serviceUseCase"] = fmt.Errorf(
				"failed to get service repository for service use case: %w", err)
			return
		}
		c.serviceUseCase = identityUseCase.NewServiceUseCase(serviceRepo)
	})
	if storedErr, exists := c.initErrors["serviceUseCase"]; exists {
		return nil, storedErr
	}
	return c.serviceUseCase, nil
}

// RoleUseCase returns the role use case instance.
func (c *Container) RoleUseCase() (identityUseCase.RoleUseCase, error) {
	c.roleUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["roleUseCase"] = fmt.Errorf("failed to get tx manager for role use case: %w", err)
			return
		}
		roleRepo, err := c.RoleRepository()
		if err != nil {
			c.initErrors["roleUseCase"] = fmt.Errorf("failed to get role repository for role use case: %w", err)
			return
		}
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["roleUseCase"] = fmt.Errorf("failed to get user repository for role use case: %w", err)
			return
		}
		serviceRepo, err := c.ServiceRepository()
		if err != nil {
			c.initErrors["roleUseCase"] = fmt.Errorf("failed to get service repository for role use case: %w", err)
			return
		}
		c.roleUseCase = identityUseCase.NewRoleUseCase(txManager, roleRepo, userRepo, serviceRepo)
	})
	if storedErr, exists := c.initErrors["roleUseCase"]; exists {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// TokenUseCase returns the token use case instance.
func (c *Container) TokenUseCase() (identityUseCase.TokenUseCase, error) {
	c.tokenUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get user repository for token use case: %w", err)
			return
		}
		serviceRepo, err := c.ServiceRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get service repository for token use case: %w", err)
			return
		}
		tokenRepo, err := c.TokenRepository()
		if err != nil {
			c.initErrors["tokenUseCase"] = fmt.Errorf("failed to get token repository for token use case: %w", err)
			return
		}
		c.tokenUseCase = identityUseCase.NewTokenUseCase(
			c.config,
			userRepo,
			serviceRepo,
			tokenRepo,
			c.TokenService(),
		)
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}
