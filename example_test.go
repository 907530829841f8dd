package bramble_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/bramble"
	"github.com/aretw0/bramble/pkg/adapters/memory"
)

// ExampleNew_memory runs a small script from an in-memory source. This is the
// setup of choice for tests and for embedding scripts into a binary.
func ExampleNew_memory() {
	source := memory.NewSource(map[string]string{
		"main.bdl": `# Topic: Demo
# Description: A two-node walk
# Author: docs
# Version: 1

@start
Hello there.
{go, onward} -> end

@end
Goodbye.
{done} -> {exit}
`,
	})

	engine, err := bramble.New(source)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	session := engine.NewSession()

	out, err := session.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, segment := range out.Segments {
		fmt.Println(segment)
	}

	// The keyword match is case-insensitive.
	out, err = session.Submit(ctx, "GO")
	if err != nil {
		log.Fatal(err)
	}
	for _, segment := range out.Segments {
		fmt.Println(segment)
	}

	out, err = session.Submit(ctx, "done")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("exited:", out.Exited)

	// Output:
	// Hello there.
	// Goodbye.
	// exited: true
}

// ExampleEngine_Register wires a host function into the session: the script
// parks on the call until a line of input arrives, then binds it.
func ExampleEngine_Register() {
	source := memory.NewSource(map[string]string{
		"main.bdl": `# Topic: Demo
# Description: Input capture
# Author: docs
# Version: 1

@start
What is your name?
!{getUserInput} : ~{name}
?{name} -> greet

@greet
Welcome, ${name}.
{done} -> {exit}
`,
	})

	engine, err := bramble.New(source)
	if err != nil {
		log.Fatal(err)
	}
	engine.Register("getUserInput", bramble.InputFunc())

	ctx := context.Background()
	session := engine.NewSession()

	out, err := session.Start(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, segment := range out.Segments {
		fmt.Println(segment)
	}

	out, err = session.Submit(ctx, "Alex")
	if err != nil {
		log.Fatal(err)
	}
	for _, segment := range out.Segments {
		fmt.Println(segment)
	}

	// Output:
	// What is your name?
	// Welcome, Alex.
}
