// Package platforms 汇总导入所有内置 OLT 平台插件
package platforms

import (
	_ "github.com/oltcmd/oltcmd/addone/olt/platforms/huawei_ma5800"
	_ "github.com/oltcmd/oltcmd/addone/olt/platforms/zte_c300"
	_ "github.com/oltcmd/oltcmd/addone/olt/platforms/zte_c600"
)
