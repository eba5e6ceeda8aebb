package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-sod/knn/internal/byteutil"
	"github.com/go-sod/knn/internal/logging"
)

func RespJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	buf := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		RespInternalError(ctx, w, `{"error": "failed to encode output json %v"}`, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func RespMethodNotAllowed(ctx context.Context, w http.ResponseWriter, method string) {
	logging.FromContext(ctx).Debugf(`{"error": "method %v is not allowed"}`, method)
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, method)
}

func RespBadRequest(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Debug(msg)
	http.Error(w, msg, http.StatusBadRequest)
}

func RespInternalError(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logging.FromContext(ctx).Errorf(format, args...)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
