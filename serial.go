// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sink

import "code.hybscloud.com/atomix"

// Serial identifies a pipe or port. Values increase monotonically
// across the process, starting at 1.
type Serial = uint32

var counter atomix.Uint32

func nextSerial() Serial {
	return counter.Add(1)
}
