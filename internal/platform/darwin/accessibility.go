//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

static CFStringRef cfstr(const char *s) {
    return CFStringCreateWithCString(NULL, s, kCFStringEncodingUTF8);
}

static char *cstr(CFStringRef s) {
    CFIndex len = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(len);
    if (!CFStringGetCString(s, buf, len, kCFStringEncodingUTF8)) {
        buf[0] = 0;
    }
    return buf;
}

static AXUIElementRef ax_application(pid_t pid) {
    return AXUIElementCreateApplication(pid);
}

static void ax_release(AXUIElementRef el) {
    if (el) CFRelease(el);
}

static unsigned long ax_hash(AXUIElementRef el) {
    return (unsigned long)CFHash(el);
}

static int ax_equal(AXUIElementRef a, AXUIElementRef b) {
    return CFEqual(a, b) ? 1 : 0;
}

// Copies a string or number attribute. *out is malloc'd on success.
static int ax_copy_string(AXUIElementRef el, const char *attr, char **out) {
    CFStringRef name = cfstr(attr);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, name, &value);
    CFRelease(name);
    if (err != kAXErrorSuccess) return err;
    if (!value) return kAXErrorNoValue;

    int rc = kAXErrorSuccess;
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        *out = cstr((CFStringRef)value);
    } else if (CFGetTypeID(value) == CFNumberGetTypeID()) {
        double d = 0;
        CFNumberGetValue((CFNumberRef)value, kCFNumberDoubleType, &d);
        *out = malloc(32);
        snprintf(*out, 32, "%g", d);
    } else {
        rc = kAXErrorNoValue;
    }
    CFRelease(value);
    return rc;
}

static int ax_copy_point(AXUIElementRef el, CFStringRef attr, AXValueType type, void *out) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    if (err != kAXErrorSuccess) return err;
    if (!value) return kAXErrorNoValue;
    int ok = CFGetTypeID(value) == AXValueGetTypeID() && AXValueGetValue((AXValueRef)value, type, out);
    CFRelease(value);
    return ok ? kAXErrorSuccess : kAXErrorNoValue;
}

static int ax_frame(AXUIElementRef el, double *x, double *y, double *w, double *h) {
    CGPoint p;
    CGSize s;
    int err = ax_copy_point(el, kAXPositionAttribute, kAXValueTypeCGPoint, &p);
    if (err != kAXErrorSuccess) return err;
    err = ax_copy_point(el, kAXSizeAttribute, kAXValueTypeCGSize, &s);
    if (err != kAXErrorSuccess) return err;
    *x = p.x; *y = p.y; *w = s.width; *h = s.height;
    return kAXErrorSuccess;
}

// Returns retained child references in a malloc'd array.
static int ax_children(AXUIElementRef el, AXUIElementRef **out, int *count) {
    CFTypeRef value = NULL;
    *count = 0;
    AXError err = AXUIElementCopyAttributeValue(el, kAXChildrenAttribute, &value);
    if (err != kAXErrorSuccess) return err;
    if (!value) return kAXErrorSuccess;
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return kAXErrorNoValue;
    }
    CFIndex n = CFArrayGetCount((CFArrayRef)value);
    *out = malloc(sizeof(AXUIElementRef) * (n > 0 ? n : 1));
    for (CFIndex i = 0; i < n; i++) {
        AXUIElementRef child = (AXUIElementRef)CFArrayGetValueAtIndex((CFArrayRef)value, i);
        CFRetain(child);
        (*out)[i] = child;
    }
    *count = (int)n;
    CFRelease(value);
    return kAXErrorSuccess;
}

static int ax_parent(AXUIElementRef el, AXUIElementRef *out) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, kAXParentAttribute, &value);
    if (err != kAXErrorSuccess) return err;
    if (!value) return kAXErrorNoValue;
    *out = (AXUIElementRef)value;
    return kAXErrorSuccess;
}

// Returns action names joined by newlines in a malloc'd string.
static int ax_actions(AXUIElementRef el, char **out) {
    CFArrayRef names = NULL;
    AXError err = AXUIElementCopyActionNames(el, &names);
    if (err != kAXErrorSuccess) return err;
    CFStringRef joined = CFStringCreateByCombiningStrings(NULL, names, CFSTR("\n"));
    *out = cstr(joined);
    CFRelease(joined);
    CFRelease(names);
    return kAXErrorSuccess;
}

static int ax_perform(AXUIElementRef el, const char *action) {
    CFStringRef name = cfstr(action);
    AXError err = AXUIElementPerformAction(el, name);
    CFRelease(name);
    return err;
}

static int ax_set_string(AXUIElementRef el, const char *attr, const char *value) {
    CFStringRef name = cfstr(attr);
    CFStringRef v = cfstr(value);
    AXError err = AXUIElementSetAttributeValue(el, name, v);
    CFRelease(v);
    CFRelease(name);
    return err;
}
*/
import "C"

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

var axAttributes = map[platform.Attribute]string{
	platform.AttrRole:        "AXRole",
	platform.AttrTitle:       "AXTitle",
	platform.AttrDescription: "AXDescription",
	platform.AttrPlaceholder: "AXPlaceholderValue",
}

// Accessibility implements platform.Accessibility over AXUIElement
// references. Every reference it hands out is retained in a handle table,
// interned by CFEqual so a node reached twice keeps one handle, and the table
// is released when the next traversal root is resolved.
type Accessibility struct {
	mu      sync.Mutex
	handles *platform.HandleTable[C.AXUIElementRef]
}

// NewAccessibility returns an empty handle table.
func NewAccessibility() *Accessibility {
	return &Accessibility{
		handles: platform.NewHandleTable(
			func(r C.AXUIElementRef) uint64 { return uint64(C.ax_hash(r)) },
			func(a, b C.AXUIElementRef) bool { return C.ax_equal(a, b) != 0 },
			func(r C.AXUIElementRef) { C.ax_release(r) },
		),
	}
}

// axError converts an AXError code.
type axError C.int

func (e axError) Error() string {
	switch C.int(e) {
	case C.kAXErrorAPIDisabled:
		return "accessibility API disabled"
	case C.kAXErrorInvalidUIElement:
		return "element no longer exists"
	case C.kAXErrorAttributeUnsupported:
		return "attribute unsupported"
	case C.kAXErrorActionUnsupported:
		return "action unsupported"
	case C.kAXErrorNoValue:
		return "no value"
	case C.kAXErrorCannotComplete:
		return "cannot complete"
	}
	return fmt.Sprintf("AXError %d", int(e))
}

func (e axError) Unwrap() error {
	switch C.int(e) {
	case C.kAXErrorNoValue, C.kAXErrorAttributeUnsupported, C.kAXErrorInvalidUIElement:
		return platform.ErrNotFound
	}
	return nil
}

func check(rc C.int) error {
	if rc == C.kAXErrorSuccess {
		return nil
	}
	return axError(rc)
}

func (a *Accessibility) ref(h model.Handle) (C.AXUIElementRef, error) {
	ref, ok := a.handles.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("handle %d: %w", h, platform.ErrNotFound)
	}
	return ref, nil
}

func (a *Accessibility) ApplicationRoot(pid int) (model.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref := C.ax_application(C.pid_t(pid))
	if ref == nil {
		return 0, fmt.Errorf("no accessibility element for pid %d", pid)
	}
	return a.handles.Replace(ref), nil
}

func (a *Accessibility) String(h model.Handle, attr platform.Attribute) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return "", err
	}
	switch attr {
	case platform.AttrValue, platform.AttrText:
		// Static text carries its content in AXValue; report it as text so it
		// renders as content rather than as a field value.
		role, _ := copyString(ref, "AXRole")
		if (attr == platform.AttrText) != (role == "AXStaticText") {
			return "", nil
		}
		return copyString(ref, "AXValue")
	}
	name, ok := axAttributes[attr]
	if !ok {
		return "", fmt.Errorf("attribute %s: %w", attr, platform.ErrNotFound)
	}
	return copyString(ref, name)
}

func copyString(ref C.AXUIElementRef, name string) (string, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var out *C.char
	if err := check(C.ax_copy_string(ref, cName, &out)); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	defer C.free(unsafe.Pointer(out))
	return C.GoString(out), nil
}

func (a *Accessibility) Frame(h model.Handle) (model.Rect, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return model.Rect{}, err
	}
	var x, y, w, ht C.double
	if err := check(C.ax_frame(ref, &x, &y, &w, &ht)); err != nil {
		return model.Rect{}, fmt.Errorf("frame: %w", err)
	}
	return model.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(ht)}, nil
}

func (a *Accessibility) Children(h model.Handle) ([]model.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return nil, err
	}
	var arr *C.AXUIElementRef
	var count C.int
	if err := check(C.ax_children(ref, &arr, &count)); err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(arr))

	kids := unsafe.Slice(arr, int(count))
	out := make([]model.Handle, len(kids))
	for i, k := range kids {
		out[i] = a.handles.Intern(k)
	}
	return out, nil
}

func (a *Accessibility) Parent(h model.Handle) (model.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return 0, err
	}
	var parent C.AXUIElementRef
	if err := check(C.ax_parent(ref, &parent)); err != nil {
		return 0, fmt.Errorf("parent: %w", err)
	}
	return a.handles.Intern(parent), nil
}

func (a *Accessibility) Actions(h model.Handle) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return nil, err
	}
	var out *C.char
	if err := check(C.ax_actions(ref, &out)); err != nil {
		return nil, fmt.Errorf("actions: %w", err)
	}
	defer C.free(unsafe.Pointer(out))
	s := C.GoString(out)
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

func (a *Accessibility) PerformAction(h model.Handle, action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return err
	}
	cAction := C.CString(action)
	defer C.free(unsafe.Pointer(cAction))
	if err := check(C.ax_perform(ref, cAction)); err != nil {
		return fmt.Errorf("perform %s: %w", action, err)
	}
	return nil
}

func (a *Accessibility) SetString(h model.Handle, attr platform.Attribute, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ref, err := a.ref(h)
	if err != nil {
		return err
	}
	name := "AXValue"
	if attr != platform.AttrValue {
		n, ok := axAttributes[attr]
		if !ok {
			return fmt.Errorf("attribute %s: %w", attr, platform.ErrNotFound)
		}
		name = n
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	if err := check(C.ax_set_string(ref, cName, cValue)); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}
