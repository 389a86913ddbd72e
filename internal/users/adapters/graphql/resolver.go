// Package graphql содержит GraphQL эндпоинт справочника пользователей.
package graphql

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/api"
	"userdirectory/pkg/logger"
)

// ErrMsgInternal - текст, который клиент видит вместо ошибки хранилища.
const ErrMsgInternal = "internal server error"

const logResolverFailed = "graphql resolver failed"

var errInternal = errors.New(ErrMsgInternal)

// rootResolver обслуживает и Query, и Mutation.
type rootResolver struct {
	userService api.UserService
}

type userArgs struct {
	Username string
}

type userInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Followers *[]graphql.ID
}

type createUserArgs struct {
	User userInput
}

func (r *rootResolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.userService.FindAll(ctx)
	if err != nil {
		return nil, clientError(ctx, err)
	}

	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{user: u})
	}
	return out, nil
}

// User не раскрывает подписчиков: поле followers отдает сырые ссылки.
func (r *rootResolver) User(ctx context.Context, args userArgs) (*userResolver, error) {
	user, err := r.userService.FindByUsername(ctx, args.Username)
	if err != nil {
		return nil, clientError(ctx, err)
	}
	if user == nil {
		return nil, nil
	}
	return &userResolver{user: user}, nil
}

func (r *rootResolver) CreateUser(ctx context.Context, args createUserArgs) (*userResolver, error) {
	user, err := r.userService.Create(ctx, args.User.toEntity())
	if err != nil {
		return nil, clientError(ctx, err)
	}
	return &userResolver{user: user}, nil
}

// clientError отдает ошибку валидации как есть, остальные заменяет на ErrMsgInternal.
// graphql-go берет extensions только у самой ошибки, без разворачивания.
func clientError(ctx context.Context, err error) error {
	var vErr *entities.ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	logger.Log(ctx).Error(ctx, logResolverFailed, zap.Error(err))
	return errInternal
}

func (in *userInput) toEntity() *entities.UserInput {
	out := &entities.UserInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
	}
	if in.Followers != nil {
		refs := make([]string, 0, len(*in.Followers))
		for _, id := range *in.Followers {
			refs = append(refs, string(id))
		}
		out.Followers = &refs
	}
	return out
}

type userResolver struct {
	user *entities.User
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *userResolver) FirstName() string {
	return r.user.FirstName
}

func (r *userResolver) LastName() string {
	return r.user.LastName
}

func (r *userResolver) Username() string {
	return r.user.Username
}

func (r *userResolver) Email() string {
	return r.user.Email
}

func (r *userResolver) FullName() string {
	return r.user.FullName()
}

func (r *userResolver) Followers() []graphql.ID {
	out := make([]graphql.ID, 0, len(r.user.Followers))
	for _, ref := range r.user.Followers {
		out = append(out, graphql.ID(ref))
	}
	return out
}
