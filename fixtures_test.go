package mirror

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/anoideaopen/mirror/core/types"
)

type Named struct {
	Name string
}

func (n *Named) GetName() string { return n.Name }

func (n *Named) Greet(name string) string { return "hi " + name }

func (n Named) Describe() string { return "named " + n.Name }

type Describer interface {
	Describe() string
}

type Person struct {
	Named
	age  int
	Tags []string
}

func NewPerson(name string, age int) *Person {
	return &Person{Named: Named{Name: name}, age: age}
}

func NewPersonNamed(name string) *Person {
	return &Person{Named: Named{Name: name}}
}

func ParsePerson(s string) (*Person, error) {
	name, rawAge, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.New("missing age")
	}
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		return nil, err
	}
	return NewPerson(name, age), nil
}

func (p *Person) Greet(other *Person) string { return "hello " + other.Name }

func (p Person) Describe() string { return fmt.Sprintf("person %s", p.Name) }

func (p *Person) Age() int { return p.age }

func (p *Person) SetAge(age int) error {
	if age < 0 {
		return errors.New("negative age")
	}
	p.age = age
	return nil
}

func (p *Person) Rename(name string) *Person {
	p.Name = name
	return p
}

func (p *Person) Pair() (string, int) { return p.Name, p.age }

func (p *Person) Total(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (p *Person) Nothing() {}

type Color struct {
	Name string
	RGB  int
}

func NewColor(name string, rgb int) Color {
	return Color{Name: name, RGB: rgb}
}

// Card takes Named by value and by pointer.
type Card struct{}

func (Card) Take(n Named) string { return "value " + n.Name }

func (Card) TakePtr(n *Named) string { return "pointer " + n.Name }

type Stranger struct{}

var (
	personType    = reflect.TypeOf(Person{})
	personPtrType = reflect.TypeOf(&Person{})
	namedType     = reflect.TypeOf(Named{})
	stringType    = reflect.TypeOf("")
	intType       = reflect.TypeOf(0)

	defaultPerson = Person{Named: Named{Name: "default"}, age: 1}
)

func init() {
	types.MustRegister[Person]()
	types.MustRegister[Named]()

	for _, err := range []error{
		types.RegisterConstructor(NewPerson),
		types.RegisterConstructor(NewPersonNamed),
		types.RegisterConstructor(NewColor),
		types.RegisterFunc[Person]("Parse", ParsePerson),
		types.RegisterVar[Person]("Default", &defaultPerson),
	} {
		if err != nil {
			panic(err)
		}
	}
}
