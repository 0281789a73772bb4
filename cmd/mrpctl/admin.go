package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/dto"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/infrastructure/mail"
	"github.com/jhoicas/mrp-api/internal/infrastructure/postgres"
)

var adminFlags struct {
	username string
	email    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Crea un usuario con rol Administrator",
	Long: `Crea un usuario administrador directamente en PostgreSQL.

Ejemplo:
  mrpctl create-admin --username root --email root@planta.local --password 'clave-segura'`,
	Args: cobra.NoArgs,
	RunE: runCreateAdmin,
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.username, "username", "", "nombre de usuario")
	f.StringVar(&adminFlags.email, "email", "", "correo electrónico")
	f.StringVar(&adminFlags.password, "password", "", "contraseña (mínimo 8 caracteres)")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), mail.NewLogMailer(log.Component("mail")), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	}, cfg.Mail.ResetURL, log.Component("auth"))

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: adminFlags.username,
		Email:    adminFlags.email,
		Password: adminFlags.password,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("crear administrador: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "administrador creado: %s (%s)\n", user.Username, user.ID)
	return nil
}
