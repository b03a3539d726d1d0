// Command make-token mints a signed bearer token for API access, for
// operators and scheduled jobs that call the protected endpoints.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/airfinance/finbi_backend/utils"
)

func main() {
	userID := flag.Int("user-id", 0, "Numeric user id to embed in the token")
	role := flag.String("role", "viewer", "Role claim (viewer, admin, ...)")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "user-id is required")
		os.Exit(2)
	}

	token, err := utils.JwtGenerate(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
