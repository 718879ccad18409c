package util

import "sort"

type Set struct {
	data map[string]struct{}
}

func NewSet() *Set {
	return &Set{
		data: make(map[string]struct{}),
	}
}

func NewSetFromSlice(items []string) *Set {
	s := NewSet()
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set) Length() int {
	return len(s.data)
}

func (s *Set) Add(item string) {
	s.data[item] = struct{}{}
}

func (s Set) List() []string {
	out := []string{}
	for v := range s.data {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *Set) Contains(item string) bool {
	_, found := s.data[item]
	return found
}

func (s *Set) Remove(item string) {
	delete(s.data, item)
}
