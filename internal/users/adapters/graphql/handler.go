package graphql

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"go.uber.org/zap"

	apigraphql "userdirectory/api/graphql"
	"userdirectory/internal/users/adapters/http/middleware"
	"userdirectory/internal/users/ports/api"
	"userdirectory/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogSchemaParsed  = "graphql schema parsed"
	LogQueryExecuted = "graphql query executed"

	ErrMsgParseSchema   = "failed to parse graphql schema"
	ErrMsgMissingQuery  = "must provide query string"
	ErrMsgInvalidBody   = "invalid graphql request body"
	ErrMsgResolverPanic = "graphql resolver panic"
)

// maxQueryDepth ограничивает вложенность запросов.
const maxQueryDepth = 10

// Request - тело POST запроса к эндпоинту.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler исполняет GraphQL запросы по схеме, разобранной один раз при старте.
type Handler struct {
	schema *graphql.Schema
	debug  bool
	path   string
}

// NewHandler разбирает схему и связывает ее с резолверами.
// debug включает GraphiQL на GET запросах к path.
func NewHandler(ctx context.Context, userService api.UserService, debug bool, path string) (*Handler, error) {
	schema, err := graphql.ParseSchema(apigraphql.Schema, &rootResolver{userService: userService},
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseSchema, err)
	}

	logger.Log(ctx).Info(ctx, LogSchemaParsed, zap.String("path", path), zap.Bool("graphiql", debug))
	return &Handler{schema: schema, debug: debug, path: path}, nil
}

// Exec исполняет запрос напрямую, без HTTP.
func (h *Handler) Exec(ctx context.Context, req *Request) *graphql.Response {
	return h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
}

// Serve обрабатывает POST с JSON {query, operationName, variables}.
func (h *Handler) Serve(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	var req Request
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(requestCtx).Info(requestCtx, ErrMsgInvalidBody, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(ErrMsgInvalidBody))
	}
	if req.Query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(ErrMsgMissingQuery))
	}

	resp := h.Exec(requestCtx, &req)

	logger.Log(requestCtx).Debug(requestCtx, LogQueryExecuted,
		zap.String("operation", req.OperationName),
		zap.Int("errors", len(resp.Errors)))

	return ctx.JSON(resp)
}

// Playground отдает GraphiQL в режиме отладки.
func (h *Handler) Playground(ctx fiber.Ctx) error {
	if !h.debug {
		return ctx.Status(fiber.StatusBadRequest).JSON(errorResponse(ErrMsgMissingQuery))
	}

	page, err := renderGraphiQL(h.path)
	if err != nil {
		return fmt.Errorf("render graphiql: %w", err)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(page)
}

func errorResponse(message string) *graphql.Response {
	return &graphql.Response{Errors: []*gqlerrors.QueryError{{Message: message}}}
}

// panicLogger пишет паники резолверов в zap.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.Log(ctx).Error(ctx, ErrMsgResolverPanic, zap.Any("panic", value))
}
