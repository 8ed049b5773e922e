package hart

// types.go holds the Privilege enum shared across the package; the trap
// Cause enum lives in trap.go.
// Grounded on the teacher's internal/vm/types.go, which keeps exactly this
// kind of small-enum-plus-String cluster separate from the bigger machine
// struct in vm.go.

//go:generate go run golang.org/x/tools/cmd/stringer -type Privilege -output privilege_string.go

// Privilege is one of the three RISC-V privilege levels this simulator
// models. Hypervisor mode is out of scope.
type Privilege uint8

const (
	PrivilegeUser       Privilege = 0
	PrivilegeSupervisor Privilege = 1
	PrivilegeMachine    Privilege = 3
)

func (p Privilege) String() string {
	switch p {
	case PrivilegeUser:
		return "U"
	case PrivilegeSupervisor:
		return "S"
	case PrivilegeMachine:
		return "M"
	default:
		return "reserved"
	}
}
