package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type base struct {
	ID     int
	secret string
}

func (b *base) Greet() string { return "base" }

func (b base) Describe() string { return fmt.Sprintf("base %d", b.ID) }

func (b *base) Secret() string { return b.secret }

type person struct {
	base
	Name string
	age  int
}

func (p *person) Greet(name string) string { return "hello " + name }

func (p *person) SetAge(age int) { p.age = age }

func (p person) Age() int { return p.age }

func (p *person) Sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (p *person) Double(n *int) int { return *n * 2 }

func (p *person) Accept(v any) string { return fmt.Sprint(v) }

func (p *person) Fail() error { return errors.New("boom") }

func (p *person) Split(s string) (string, string, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", errors.New("no colon")
	}
	return a, b, nil
}

func (p *person) Panic() { panic("kaboom") }

type shape interface {
	Area() float64
}

type square struct{ side float64 }

func (s square) Area() float64 { return s.side * s.side }

type holder struct {
	shape
	Label string
}

func newPerson(name string, age int) *person {
	return &person{Name: name, age: age}
}

func newPersonNamed(name string) (*person, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}
	return &person{Name: name}, nil
}

var (
	personType    = reflect.TypeOf(person{})
	personPtrType = reflect.TypeOf(&person{})
	intType       = reflect.TypeOf(0)
	stringType    = reflect.TypeOf("")
	shapeType     = reflect.TypeOf((*shape)(nil)).Elem()
)
