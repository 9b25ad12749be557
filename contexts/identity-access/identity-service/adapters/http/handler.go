package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"clearfund/contexts/identity-access/identity-service/application"
	"clearfund/contexts/identity-access/identity-service/domain/entities"
	"clearfund/contexts/identity-access/identity-service/ports"
	httptransport "clearfund/contexts/identity-access/identity-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(
	ctx context.Context,
	req httptransport.RegisterRequest,
) (httptransport.AuthResponse, error) {
	result, err := h.Service.Register(ctx, ports.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       entities.Role(req.Role),
		Department: req.Department,
		StudentID:  req.StudentID,
		SourceTag:  req.SourceTag,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		Status: "success",
		Token:  result.Token,
		Data:   userToDTO(result.User),
	}, nil
}

func (h Handler) LoginHandler(
	ctx context.Context,
	req httptransport.LoginRequest,
) (httptransport.AuthResponse, error) {
	result, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		Status: "success",
		Token:  result.Token,
		Data:   userToDTO(result.User),
	}, nil
}

func (h Handler) ProfileHandler(
	ctx context.Context,
	userID int64,
) (httptransport.ProfileResponse, error) {
	user, err := h.Service.Profile(ctx, userID)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		Status: "success",
		Data:   userToDTO(user),
	}, nil
}

func (h Handler) ValidateHandler(
	ctx context.Context,
	token string,
) (httptransport.ValidateResponse, error) {
	identity, err := h.Service.Resolve(ctx, token)
	if err != nil {
		return httptransport.ValidateResponse{}, err
	}
	return httptransport.ValidateResponse{
		Status: "success",
		Data: httptransport.TokenClaimsDTO{
			UserID:    identity.UserID,
			Role:      string(identity.Role),
			SourceTag: identity.SourceTag,
		},
	}, nil
}

func userToDTO(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Department: user.Department,
		StudentID:  user.StudentID,
		SourceTag:  user.SourceTag,
		CreatedAt:  user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
