package http

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed pages
var pagesFS embed.FS

// CheckoutPage serves the checkout page at exactly "/" and falls through to
// a JSON 404 for every other path, since "/" on the mux matches everything.
func CheckoutPage() http.Handler {
	notFound := NotFoundHandler()
	page := pageHandler("index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			notFound.ServeHTTP(w, r)
			return
		}
		page(w, r)
	})
}

// SuccessPage serves the payment-success redirect target.
func SuccessPage() http.HandlerFunc {
	return pageHandler("success.html")
}

// FailPage serves the payment-failure redirect target.
func FailPage() http.HandlerFunc {
	return pageHandler("fail.html")
}

func pageHandler(name string) http.HandlerFunc {
	// embed guarantees the file exists; a miss is a build mistake.
	data, err := fs.ReadFile(pagesFS, "pages/"+name)
	if err != nil {
		panic("missing embedded page: " + name)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
