package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries the authenticated caller for the life of a request.
type RequestData struct {
	Username string
	Subject  string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// Username returns the caller's username or "" when anonymous.
func Username(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.Username
	}
	return ""
}
