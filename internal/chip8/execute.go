package chip8

// execute runs the semantics of a decoded instruction. The program counter
// already points to the following instruction.
func (m *Machine) execute(ins Instruction) error {
	v := &m.regs.V
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCls:
		m.display.Clear()

	case OpRet:
		address, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.regs.PC = address

	case OpJump:
		m.regs.PC = ins.NNN

	case OpCall:
		if err := m.stack.Push(m.regs.PC); err != nil {
			return err
		}
		m.regs.PC = ins.NNN

	case OpSkipEqByte:
		m.skipIf(v[x] == ins.KK)
	case OpSkipNeByte:
		m.skipIf(v[x] != ins.KK)
	case OpSkipEqReg:
		m.skipIf(v[x] == v[y])
	case OpSkipNeReg:
		m.skipIf(v[x] != v[y])

	case OpLoadByte:
		v[x] = ins.KK
	case OpAddByte:
		v[x] += ins.KK

	case OpLoadReg:
		v[x] = v[y]
	case OpOr:
		v[x] |= v[y]
		m.resetFlag()
	case OpAnd:
		v[x] &= v[y]
		m.resetFlag()
	case OpXor:
		v[x] ^= v[y]
		m.resetFlag()

	case OpAddReg:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		v[flagRegister] = boolToFlag(sum > 0xFF)

	case OpSub:
		vx, vy := v[x], v[y]
		v[x] = vx - vy
		v[flagRegister] = boolToFlag(vx >= vy)

	case OpSubN:
		vx, vy := v[x], v[y]
		v[x] = vy - vx
		v[flagRegister] = boolToFlag(vy >= vx)

	case OpShiftRight:
		if m.quirks.Cosmac {
			v[x] = v[y]
		}
		value := v[x]
		v[x] = value >> 1
		v[flagRegister] = value & 0x1

	case OpShiftLeft:
		if m.quirks.Cosmac {
			v[x] = v[y]
		}
		value := v[x]
		v[x] = value << 1
		v[flagRegister] = value >> 7

	case OpLoadIndex:
		m.regs.I = ins.NNN

	case OpJumpOffset:
		offset := v[x]
		if m.quirks.Cosmac {
			offset = v[0]
		}
		m.regs.PC = (ins.NNN + uint16(offset)) & MaxAddress

	case OpRandom:
		v[x] = m.random() & ins.KK

	case OpDraw:
		m.draw(x, y, ins.N)

	case OpSkipKey:
		m.skipIf(m.keys[v[x]&0xF])
	case OpSkipNotKey:
		m.skipIf(!m.keys[v[x]&0xF])

	case OpLoadDelay:
		v[x] = m.regs.DelayTimer
	case OpSetDelay:
		m.regs.DelayTimer = v[x]
	case OpSetSound:
		m.regs.SoundTimer = v[x]

	case OpWaitKey:
		m.waitKey(x)

	case OpAddIndex:
		m.addIndex(v[x])

	case OpLoadFont:
		m.regs.I = FontAddress + uint16(v[x]&0xF)*FontCharSize

	case OpStoreBCD:
		value := v[x]
		m.memory.Write(m.regs.I, value/100)
		m.memory.Write(m.regs.I+1, value/10%10)
		m.memory.Write(m.regs.I+2, value%10)

	case OpStoreRegs:
		for i := uint16(0); i <= uint16(x); i++ {
			m.memory.Write(m.regs.I+i, v[i])
		}
		m.advanceIndex(x)

	case OpLoadRegs:
		for i := uint16(0); i <= uint16(x); i++ {
			v[i] = m.memory.Read(m.regs.I + i)
		}
		m.advanceIndex(x)

	default:
		return ErrInvalidOpcode
	}
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.regs.PC = (m.regs.PC + 2) & MaxAddress
	}
}

// repeat moves the program counter back to the executing instruction.
func (m *Machine) repeat() {
	m.regs.PC = (m.regs.PC - 2) & MaxAddress
}

// resetFlag clears VF after the logical operations on the COSMAC VIP.
func (m *Machine) resetFlag() {
	if m.quirks.Cosmac {
		m.regs.V[flagRegister] = 0
	}
}

// advanceIndex moves I past the registers copied by FX55/FX65 on the COSMAC VIP.
func (m *Machine) advanceIndex(x uint8) {
	if m.quirks.Cosmac {
		m.regs.I = (m.regs.I + uint16(x) + 1) & MaxAddress
	}
}

func (m *Machine) addIndex(value uint8) {
	sum := m.regs.I + uint16(value)
	if sum <= MaxAddress {
		m.regs.I = sum
		return
	}

	m.regs.I = MaxAddress
	if m.quirks.Amiga {
		m.regs.V[flagRegister] = 1
	}
}

func (m *Machine) draw(x, y, height uint8) {
	sprite := make([]byte, height)
	for row := range sprite {
		sprite[row] = m.memory.Read(m.regs.I + uint16(row))
	}

	collision := m.display.Draw(m.regs.V[x], m.regs.V[y], sprite, m.quirks.Cosmac)
	m.regs.V[flagRegister] = boolToFlag(collision)
}

// waitKey implements FX0A. While no key is available the program counter is
// moved back so that the instruction executes again on the next step.
// On the COSMAC VIP the key is returned after it has been pressed and released.
func (m *Machine) waitKey(x uint8) {
	if m.keyLatch != noKey {
		if !m.keys[m.keyLatch] {
			m.regs.V[x] = uint8(m.keyLatch)
			m.keyLatch = noKey
			return
		}
		m.repeat()
		return
	}

	for key, pressed := range m.keys {
		if !pressed {
			continue
		}
		if m.quirks.Cosmac {
			m.keyLatch = key
			break
		}
		m.regs.V[x] = uint8(key)
		return
	}

	m.repeat()
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
