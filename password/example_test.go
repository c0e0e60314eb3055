package password_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/paccolamano/lazyalgo/password"
)

func ExampleNew() {
	g := password.New(password.WithSource(rand.New(rand.NewPCG(1, 2))))

	p, err := g.Generate()
	if err != nil {
		panic(err)
	}

	fmt.Println(len(p))
	// Output: 16
}
