package chip8

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack is a fixed capacity stack of subroutine return addresses.
type Stack struct {
	entries [StackDepth]uint16
	depth   int
}

// Push adds a return address. A full stack is left unchanged and ErrStackOverflow is returned.
func (s *Stack) Push(address uint16) error {
	if s.depth == StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.depth] = address
	s.depth++
	return nil
}

// Pop removes and returns the most recently pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	return s.entries[s.depth], nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.depth
}
